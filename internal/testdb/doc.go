// Package testdb provides helpers for tests that need a real PostgreSQL
// database.
//
// Tests call Open, which skips the test when no database URL is configured:
//
//	func TestSomething(t *testing.T) {
//	    sqlDB := testdb.Open(t)
//	    db := testdb.Gorm(t, sqlDB)
//	    testdb.WithTx(t, db, func(tx *gorm.DB) {
//	        // work inside a transaction that is rolled back afterwards
//	    })
//	}
//
// The URL is read from USERS_TEST_DATABASE_URL, falling back to
// DATABASE_URL. The embedded migrations are applied once per Open.
package testdb
