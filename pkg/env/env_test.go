package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       error
		want        string
	}{
		{
			"missing environment variable",
			&Error{Name: "FOLD_API_URL"},
			`unable to access environment variable: FOLD_API_URL`,
		},
		{
			"missing environment variable without a name",
			&Error{},
			`unable to access environment variable: `,
		},
		{
			"invalid environment variable type",
			&TypeError{Name: "FOLD_MAX_INFLIGHT"},
			`unable to convert environment variable: FOLD_MAX_INFLIGHT`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.given.Error())
		})
	}
}
