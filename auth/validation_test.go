package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Username:        "newuser",
		Email:           "user@example.com",
		Password:        "strongpassword123",
		PasswordConfirm: "strongpassword123",
	}
}

func TestRegisterRequestValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*RegisterRequest)
		wantField string
	}{
		{"valid", func(r *RegisterRequest) {}, ""},
		{"username too short", func(r *RegisterRequest) { r.Username = "ab" }, "username"},
		{"username too long", func(r *RegisterRequest) { r.Username = strings.Repeat("a", 151) }, "username"},
		{"username at max", func(r *RegisterRequest) { r.Username = strings.Repeat("a", 150) }, ""},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"missing email", func(r *RegisterRequest) { r.Email = "" }, "email"},
		{"password too short", func(r *RegisterRequest) {
			r.Password = "short12"
			r.PasswordConfirm = "short12"
		}, "password"},
		{"confirmation mismatch", func(r *RegisterRequest) { r.PasswordConfirm = "different-password" }, "password_confirm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			body := validRegisterRequest()
			tt.mutate(&body)

			err := Validate.Struct(body)
			if tt.wantField == "" {
				req.NoError(err)
				return
			}
			req.Error(err)
			fields := FieldErrors(err)
			req.Contains(fields, tt.wantField)
		})
	}
}

func TestFieldErrorMessages(t *testing.T) {
	req := require.New(t)

	body := RegisterRequest{
		Username:        "ab",
		Email:           "nope",
		Password:        "strongpassword123",
		PasswordConfirm: "mismatch-password",
	}
	fields := FieldErrors(Validate.Struct(body))

	req.Equal("ensure this field has at least 3 characters", fields["username"])
	req.Equal("enter a valid email address", fields["email"])
	req.Equal("passwords do not match", fields["password_confirm"])
}

func TestFieldErrorsNonValidatorError(t *testing.T) {
	req := require.New(t)
	req.Nil(FieldErrors(nil))
	req.Nil(FieldErrors(errors.New("plain error")))
}
