package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sortRequest struct {
	Sort string `validate:"sortspec"`
}

func TestValidate_SortSpec(t *testing.T) {
	cases := []struct {
		name  string
		input string
		valid bool
	}{
		{"empty", "", true},
		{"single column", "name", true},
		{"multiple keys", "status:desc, name:asc", true},
		{"unknown column", "rating:asc", false},
		{"unknown direction", "name:up", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(sortRequest{Sort: tc.input})
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
