package storage

import (
	"context"
	"errors"
	"testing"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		str     string
		wantErr bool
	}{
		{name: "valid string", str: "test"},
		{name: "empty string", str: "", wantErr: true},
		{name: "whitespace only", str: "  \t\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, "param")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrEmptyString) {
				t.Errorf("validateString() error = %v, want ErrEmptyString", err)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	for _, id := range []int64{0, -3} {
		if err := validateID(id, "id"); !errors.Is(err, ErrInvalidID) {
			t.Errorf("validateID(%d) error = %v, want ErrInvalidID", id, err)
		}
	}
	if err := validateID(1, "id"); err != nil {
		t.Errorf("validateID(1) error = %v", err)
	}
}

func TestValidateNotNil(t *testing.T) {
	var missing *int
	if err := validateNotNil(missing, "value"); !errors.Is(err, ErrNilParameter) {
		t.Errorf("validateNotNil(nil) error = %v, want ErrNilParameter", err)
	}
	value := 4
	if err := validateNotNil(&value, "value"); err != nil {
		t.Errorf("validateNotNil(&value) error = %v", err)
	}
}
