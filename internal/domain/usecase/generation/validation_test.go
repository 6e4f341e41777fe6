package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
)

func TestOptionsValidator_Validate(t *testing.T) {
	v := NewOptionsValidator()

	valid := entity.GenerationOptions{
		Gender:        entity.GenderMale,
		Background:    entity.BackgroundCity,
		InputImageURL: "https://res.example.com/upload/v1/portrait.JPG",
	}

	tests := []struct {
		name    string
		mutate  func(o *entity.GenerationOptions)
		wantErr bool
	}{
		{"valid options", func(o *entity.GenerationOptions) {}, false},
		{"heic upload", func(o *entity.GenerationOptions) { o.InputImageURL = "https://x.io/a.heic" }, false},
		{"webp with query string", func(o *entity.GenerationOptions) { o.InputImageURL = "https://x.io/a.webp?w=512" }, false},
		{"unknown gender", func(o *entity.GenerationOptions) { o.Gender = "other" }, true},
		{"missing gender", func(o *entity.GenerationOptions) { o.Gender = "" }, true},
		{"unknown background", func(o *entity.GenerationOptions) { o.Background = "beach" }, true},
		{"gif upload", func(o *entity.GenerationOptions) { o.InputImageURL = "https://x.io/a.gif" }, true},
		{"no extension", func(o *entity.GenerationOptions) { o.InputImageURL = "https://x.io/image" }, true},
		{"not a url", func(o *entity.GenerationOptions) { o.InputImageURL = "portrait.png" }, true},
		{"ftp scheme", func(o *entity.GenerationOptions) { o.InputImageURL = "ftp://x.io/a.png" }, true},
		{"empty url", func(o *entity.GenerationOptions) { o.InputImageURL = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.mutate(&opts)

			err := v.Validate(opts)

			if tt.wantErr {
				assert.ErrorIs(t, err, errs.ErrInvalidOptions)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOptionsValidator_NamesField(t *testing.T) {
	v := NewOptionsValidator()

	err := v.Validate(entity.GenerationOptions{
		Gender:        entity.GenderFemale,
		Background:    "space",
		InputImageURL: "https://x.io/a.png",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "background")
}

func TestParseGenerationID(t *testing.T) {
	id, err := ParseGenerationID("42")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	id, err = ParseGenerationID(" 7 ")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)

	for _, raw := range []string{"", "abc", "0", "-3", "4.5"} {
		_, err := ParseGenerationID(raw)
		assert.ErrorIs(t, err, errs.ErrInvalidGenerationID, "input %q", raw)
	}
}
