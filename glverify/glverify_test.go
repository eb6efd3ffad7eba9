package glverify_test

import (
	"testing"

	"github.com/soypat/tgsi2glsl/glverify"
)

func TestWindow(t *testing.T) {
	window, term, err := glverify.InitWithCurrentWindow33(glverify.WindowConfig{
		Title:         "My great window",
		NotResizable:  false,
		Version:       [2]int{3, 3},
		OpenGLProfile: glverify.ProfileCore,
		ForwardCompat: true,
		Width:         1,
		Height:        1,
	})
	if err != nil {
		t.Log(err)
		t.Skip()
	}
	term()
	_ = window
}
