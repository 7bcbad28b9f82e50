package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignIn(t *testing.T) {
	tests := []struct {
		name    string
		form    SignIn
		wantErr bool
		field   string
	}{
		{name: "valid", form: SignIn{Email: "johndoe@example.com", Password: "123456"}},
		{name: "missing email", form: SignIn{Password: "123456"}, wantErr: true, field: "Email"},
		{name: "invalid email", form: SignIn{Email: "invalid-email", Password: "123456"}, wantErr: true, field: "Email"},
		{name: "missing password", form: SignIn{Email: "johndoe@example.com"}, wantErr: true, field: "Password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.form)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestSignUp(t *testing.T) {
	tests := []struct {
		name    string
		form    SignUp
		wantErr bool
		field   string
	}{
		{name: "valid", form: SignUp{Name: "John Doe", Email: "johndoe@example.com", Password: "123456"}},
		{name: "empty name", form: SignUp{Email: "johndoe@example.com", Password: "123456"}, wantErr: true, field: "Name"},
		{name: "short password", form: SignUp{Name: "John Doe", Email: "johndoe@example.com", Password: "12345"}, wantErr: true, field: "Password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.form)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestProfile(t *testing.T) {
	tests := []struct {
		name    string
		form    Profile
		wantErr bool
		field   string
	}{
		{
			name: "no password change",
			form: Profile{Name: "John Doe", Email: "johndoe@example.com"},
		},
		{
			name: "full password change",
			form: Profile{
				Name: "John Doe", Email: "johndoe@example.com",
				OldPassword: "123456", Password: "1234567", PasswordConfirmation: "1234567",
			},
		},
		{
			name: "new password without old one",
			form: Profile{
				Name: "John Doe", Email: "johndoe@example.com",
				Password: "1234567", PasswordConfirmation: "1234567",
			},
			wantErr: true, field: "OldPassword",
		},
		{
			name: "confirmation mismatch",
			form: Profile{
				Name: "John Doe", Email: "johndoe@example.com",
				OldPassword: "123456", Password: "1234567", PasswordConfirmation: "1324567",
			},
			wantErr: true, field: "PasswordConfirmation",
		},
		{
			name:    "empty name and bad email",
			form:    Profile{Email: "invalid-email"},
			wantErr: true, field: "Name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.form)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}
