package fabi

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProduction(t *testing.T) {
	cases := []struct {
		description string
		given       func()
		want        bool
	}{
		{
			"environment variable value set to production",
			func() {
				t.Setenv("ENVIRONMENT", "production")
			},
			true,
		},
		{
			"environment variable value set to other environment",
			func() {
				t.Setenv("ENVIRONMENT", "test")
			},
			false,
		},
		{
			"environment variable without value",
			func() {
				t.Setenv("ENVIRONMENT", "")
			},
			false,
		},
		{
			"environment variable not set",
			func() {
				// No-op.
			},
			false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Cleanup(func() {
				os.Clearenv()
			})

			tc.given()

			actual := Production()

			assert.Equal(t, tc.want, actual)
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	cases := []struct {
		description string
		given       func()
		want        time.Duration
	}{
		{
			"overridden duration with environment variable value with unit",
			func() {
				t.Setenv("REQUEST_TIMEOUT", "5s")
			},
			time.Duration(5 * time.Second),
		},
		{
			"overridden duration with environment variable value without unit",
			func() {
				t.Setenv("REQUEST_TIMEOUT", "5")
			},
			time.Duration(5 * time.Second),
		},
		{
			"default duration with invalid environment variable value",
			func() {
				t.Setenv("REQUEST_TIMEOUT", "test")
			},
			time.Duration(2 * time.Minute),
		},
		{
			"default duration with environment variable without value",
			func() {
				t.Setenv("REQUEST_TIMEOUT", "")
			},
			time.Duration(2 * time.Minute),
		},
		{
			"default duration with environment variable not set",
			func() {
				// No-op.
			},
			time.Duration(2 * time.Minute),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Cleanup(func() {
				os.Clearenv()
			})

			tc.given()

			actual := RequestTimeout()

			assert.Equal(t, tc.want, actual)
		})
	}
}
