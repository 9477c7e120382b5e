package api

import (
	"time"

	"github.com/phrazzld/users-api/internal/domain"
)

// SocialResponse is the wire form of a user's social links. Unset links are
// omitted.
type SocialResponse struct {
	Facebook string `json:"facebook,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// UserResponse represents the response data for a user.
type UserResponse struct {
	ID        int64          `json:"id"`
	Email     string         `json:"email"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Social    SocialResponse `json:"social"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// userToResponse converts a domain.User to a UserResponse
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Social: SocialResponse{
			Facebook: user.Social.Facebook,
			Twitter:  user.Social.Twitter,
			GitHub:   user.Social.GitHub,
			Website:  user.Social.Website,
		},
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func usersToResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userToResponse(&users[i]))
	}
	return out
}
