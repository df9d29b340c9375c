package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestFileAppender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fourws.log")
	appender := NewFileAppender(path, 1)

	logger := NewBlankLogger("file")
	logger.AddAppender(appender)
	logger.SetLevel(INFO)
	logger.Infow("moved", "step", 5)
	logger.Debug("hidden")
	test.That(t, appender.Close(), test.ShouldBeNil)

	data, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	test.That(t, lines, test.ShouldHaveLength, 1)
	test.That(t, lines[0], test.ShouldContainSubstring, "INFO\tfile\t")
	test.That(t, lines[0], test.ShouldContainSubstring, "moved\t{\"step\":5}")
}
