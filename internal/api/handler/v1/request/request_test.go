package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 {
	return &v
}

func str(v string) *string {
	return &v
}

func validCreateEventRequest() CreateEventRequest {
	return CreateEventRequest{
		Sport:    "football",
		Level:    "beginner",
		Gender:   "mixed",
		Location: "Stade Charléty",
		StartsAt: "2026-09-15T18:00:00Z",
	}
}

func TestCreateEventRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *CreateEventRequest)
		wantErr bool
	}{
		{
			name:   "valid without coordinates",
			mutate: func(req *CreateEventRequest) {},
		},
		{
			name: "valid with coordinates",
			mutate: func(req *CreateEventRequest) {
				req.Latitude = f64(48.8188)
				req.Longitude = f64(2.3469)
			},
		},
		{
			name: "latitude below range",
			mutate: func(req *CreateEventRequest) {
				req.Latitude = f64(-90.5)
			},
			wantErr: true,
		},
		{
			name: "latitude above range",
			mutate: func(req *CreateEventRequest) {
				req.Latitude = f64(91)
			},
			wantErr: true,
		},
		{
			name: "longitude below range",
			mutate: func(req *CreateEventRequest) {
				req.Longitude = f64(-180.5)
			},
			wantErr: true,
		},
		{
			name: "longitude above range",
			mutate: func(req *CreateEventRequest) {
				req.Longitude = f64(181)
			},
			wantErr: true,
		},
		{
			name: "coordinates at the bounds",
			mutate: func(req *CreateEventRequest) {
				req.Latitude = f64(90)
				req.Longitude = f64(-180)
			},
		},
		{
			name: "unknown level",
			mutate: func(req *CreateEventRequest) {
				req.Level = "pro"
			},
			wantErr: true,
		},
		{
			name: "missing start time",
			mutate: func(req *CreateEventRequest) {
				req.StartsAt = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateEventRequest()
			tt.mutate(&req)

			err := req.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdatePlaceRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdatePlaceRequest
		wantErr error
	}{
		{
			name: "nothing provided",
			req:  UpdatePlaceRequest{},
		},
		{
			name: "valid name and city",
			req:  UpdatePlaceRequest{Name: str("Gymnase Japy"), City: str("Paris")},
		},
		{
			name:    "name too short",
			req:     UpdatePlaceRequest{Name: str("a")},
			wantErr: errInvalidPlaceName,
		},
		{
			name:    "name provided but empty",
			req:     UpdatePlaceRequest{Name: str("")},
			wantErr: errInvalidPlaceName,
		},
		{
			name:    "city provided but empty",
			req:     UpdatePlaceRequest{City: str("")},
			wantErr: errInvalidPlaceCity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSignupRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SignupRequest
		wantErr bool
	}{
		{
			name: "username and password only",
			req:  SignupRequest{Username: "marie", Password: "password1"},
		},
		{
			name: "with email and avatar color",
			req: SignupRequest{
				Username:    "marie",
				Password:    "password1",
				Email:       "marie@example.com",
				AvatarColor: "#ff0000",
			},
		},
		{
			name:    "malformed email",
			req:     SignupRequest{Username: "marie", Password: "password1", Email: "not-an-email"},
			wantErr: true,
		},
		{
			name:    "avatar color without hash",
			req:     SignupRequest{Username: "marie", Password: "password1", AvatarColor: "ff0000"},
			wantErr: true,
		},
		{
			name:    "avatar color with bad length",
			req:     SignupRequest{Username: "marie", Password: "password1", AvatarColor: "#ff00"},
			wantErr: true,
		},
		{
			name: "short hex avatar color",
			req:  SignupRequest{Username: "marie", Password: "password1", AvatarColor: "#f00"},
		},
		{
			name:    "password without digit",
			req:     SignupRequest{Username: "marie", Password: "passwordonly"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
