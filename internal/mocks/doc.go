// Package mocks provides shared mock implementations for testing.
//
// Mocks are built on testify/mock:
//
//	import "github.com/phrazzld/users-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    userStore := new(mocks.TestifyMockUserStore)
//	    userStore.On("GetByID", mock.Anything, int64(1)).Return(nil, store.ErrUserNotFound)
//
//	    // Use the mock in your test...
//	    userStore.AssertExpectations(t)
//	}
package mocks
