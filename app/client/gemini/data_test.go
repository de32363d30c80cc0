package gemini

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserRequest(t *testing.T) {
	req := UserRequest("hello")

	require.Len(t, req.Contents, 1)
	require.Equal(t, RoleUser, req.Contents[0].Role)
	require.Equal(t, []Part{{Text: "hello"}}, req.Contents[0].Parts)
}

func TestFirstText(t *testing.T) {
	var empty Response

	_, ok := empty.FirstText()
	require.False(t, ok)

	res := Response{Candidates: []Candidate{
		{Content: Content{Parts: []Part{{Text: "   "}}}},
		{Content: Content{Role: RoleModel, Parts: []Part{{Text: " cut it into rags "}}}},
	}}

	text, ok := res.FirstText()
	require.True(t, ok)
	require.Equal(t, "cut it into rags", text)
}
