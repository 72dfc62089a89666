package response

import "tablebook/internal/usecase/queries"

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
}

type MeResponse struct {
	User *queries.AuthorizedUserView `json:"user"`
}
