package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID_Accepted(t *testing.T) {
	tests := []struct {
		input string
		id    string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"http://youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"https://m.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://music.youtube.com/watch?v=dQw4w9WgXcQ&list=RDAMVM", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/a_B-c1D2e3F/", "a_B-c1D2e3F"},
		{"https://www.youtube.com/live/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"HTTPS://WWW.YOUTUBE.COM/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"  https://youtu.be/dQw4w9WgXcQ  ", "dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		id, err := ExtractVideoID(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.id, id, tt.input)
		assert.True(t, ValidateURL(tt.input), tt.input)
	}
}

func TestExtractVideoID_Rejected(t *testing.T) {
	tests := []struct {
		input string
		err   error
	}{
		{"", ErrEmptyURL},
		{"   ", ErrEmptyURL},
		{"dQw4w9WgXcQ", ErrMalformedURL},
		{"ftp://youtube.com/watch?v=dQw4w9WgXcQ", ErrMalformedURL},
		{"https://user:pw@youtube.com/watch?v=dQw4w9WgXcQ", ErrMalformedURL},
		{"https://youtube.com:8443/watch?v=dQw4w9WgXcQ", ErrUnsupportedHost},
		{"https://vimeo.com/watch?v=dQw4w9WgXcQ", ErrUnsupportedHost},
		{"https://youtube.com.evil.io/watch?v=dQw4w9WgXcQ", ErrUnsupportedHost},
		{"https://www.youtube.com/channel/UC1234567890", ErrUnsupportedPath},
		{"https://www.youtube.com/watch?v=short", ErrInvalidVideoID},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQX", ErrInvalidVideoID},
		{"https://www.youtube.com/watch", ErrInvalidVideoID},
		{"https://youtu.be/dQw4w9Wg%21Q", ErrInvalidVideoID},
		{"https://youtu.be/", ErrInvalidVideoID},
		{"https://www.youtube.com/watch?v=" + strings.Repeat("a", MaxURLLength), ErrURLTooLong},
	}

	for _, tt := range tests {
		_, err := ExtractVideoID(tt.input)
		assert.ErrorIs(t, err, tt.err, tt.input)
		assert.False(t, ValidateURL(tt.input), tt.input)
	}
}

func TestCanonicalURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", CanonicalURL("dQw4w9WgXcQ"))
}
