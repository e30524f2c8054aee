package users

// UpdateProfileRequest is the partial-update payload for PUT /profile.
// nil pointers mean "leave unchanged"; provided values are re-validated.
type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitnil,min=3,max=150" example:"newname"`
	Email    *string `json:"email" validate:"omitnil,email" example:"new@example.com"`
}
