package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

type wheelReport struct {
	Name    string
	Heading float64
	slot    int
}

// assertLogMatches fuzzy matches a console log line: the time only needs to parse, and the caller
// only needs to match on filename.
func assertLogMatches(t *testing.T, actual *bytes.Buffer, expected string) {
	t.Helper()

	output, err := actual.ReadString('\n')
	test.That(t, err, test.ShouldBeNil)

	actualParts := strings.Split(strings.TrimSuffix(output, "\n"), "\t")
	expectedParts := strings.Split(expected, "\t")
	test.That(t, len(actualParts), test.ShouldEqual, len(expectedParts))

	_, err = time.Parse(DefaultTimeFormatStr, actualParts[0])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, actualParts[1], test.ShouldEqual, expectedParts[1])
	test.That(t, actualParts[2], test.ShouldEqual, expectedParts[2])

	actualFilename, actualLineNumber, found := strings.Cut(actualParts[3], ":")
	test.That(t, found, test.ShouldBeTrue)
	expectedFilename, _, _ := strings.Cut(expectedParts[3], ":")
	test.That(t, actualFilename, test.ShouldEqual, expectedFilename)
	_, err = strconv.Atoi(actualLineNumber)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, actualParts[4], test.ShouldEqual, expectedParts[4])
	if len(actualParts) == 5 {
		return
	}

	expectedMap := make(map[string]any)
	test.That(t, json.Unmarshal([]byte(expectedParts[5]), &expectedMap), test.ShouldBeNil)
	actualMap := make(map[string]any)
	test.That(t, json.Unmarshal([]byte(actualParts[5]), &actualMap), test.ShouldBeNil)
	test.That(t, actualMap, test.ShouldResemble, expectedMap)
}

func TestConsoleOutputFormat(t *testing.T) {
	notStdout := &bytes.Buffer{}
	logger := &impl{"fourws", NewAtomicLevelAt(DEBUG), false, []Appender{NewWriterAppender(notStdout)}}

	logger.Info("vehicle ready")
	assertLogMatches(t, notStdout,
		"2023-10-30T09:12:09.459-0400\tINFO\tfourws\tlogging/impl_test.go:61\tvehicle ready")

	logger.Debugf("received a Move with step:%.2f", 5.0)
	assertLogMatches(t, notStdout,
		"2023-10-30T09:12:09.459-0400\tDEBUG\tfourws\tlogging/impl_test.go:65\treceived a Move with step:5.00")

	logger.Infow("wheel reversed", "wheel", "COL_2", "heading", 225.0)
	assertLogMatches(t, notStdout,
		"2023-10-30T09:12:09.459-0400\tINFO\tfourws\tlogging/impl_test.go:69\twheel reversed\t"+
			`{"wheel":"COL_2","heading":225}`)

	// Only exported struct fields are serialized.
	logger.Warnw("wheel", "report", wheelReport{"COL_1", 90, 0})
	assertLogMatches(t, notStdout,
		"2023-10-30T09:12:09.459-0400\tWARN\tfourws\tlogging/impl_test.go:75\twheel\t"+
			`{"report":{"Name":"COL_1","Heading":90}}`)

	// An unpaired key is kept with an error value.
	logger.Errorw("odd", "lonely")
	assertLogMatches(t, notStdout,
		"2023-10-30T09:12:09.459-0400\tERROR\tfourws\tlogging/impl_test.go:81\todd\t"+
			`{"lonely":"unpaired log key"}`)
}

func TestLevels(t *testing.T) {
	notStdout := &bytes.Buffer{}
	logger := &impl{"fourws", NewAtomicLevelAt(WARN), true, []Appender{NewWriterAppender(notStdout)}}

	logger.Debug("dropped")
	logger.Info("dropped")
	test.That(t, notStdout.Len(), test.ShouldEqual, 0)

	logger.Warn("kept")
	assertLogMatches(t, notStdout,
		"2023-10-30T09:12:09.459Z\tWARN\tfourws\tlogging/impl_test.go:96\tkept")

	// A debug context lets a single call through regardless of level.
	logger.CDebugf(EnableDebugMode(context.Background(), ""), "traced %d", 1)
	assertLogMatches(t, notStdout,
		"2023-10-30T09:12:09.459Z\tDEBUG\tfourws\tlogging/impl_test.go:101\ttraced 1")

	logger.SetLevel(DEBUG)
	test.That(t, logger.GetLevel(), test.ShouldEqual, DEBUG)
	test.That(t, logger.Level(), test.ShouldEqual, zapcore.DebugLevel)
}

func TestSublogger(t *testing.T) {
	notStdout := &bytes.Buffer{}
	logger := &impl{"fourws", NewAtomicLevelAt(INFO), true, []Appender{NewWriterAppender(notStdout)}}

	sub := logger.Sublogger("remote")
	sub.SetLevel(ERROR)
	test.That(t, logger.GetLevel(), test.ShouldEqual, INFO)

	sub.Error("stick lost")
	assertLogMatches(t, notStdout,
		"2023-10-30T09:12:09.459Z\tERROR\tfourws.remote\tlogging/impl_test.go:118\tstick lost")
}

func TestObservedLogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Debugw("received a SetMode", "mode", "curve")
	logger.Sublogger("engine").Info("moved")

	test.That(t, logs.FilterMessage("received a SetMode").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterField(zapcore.Field{Key: "mode", Type: zapcore.StringType, String: "curve"}).Len(),
		test.ShouldEqual, 1)
	test.That(t, logs.All()[1].LoggerName, test.ShouldEqual, "engine")
}

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warning", WARN},
		{"Error", ERROR},
	} {
		level, err := LevelFromString(tc.in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, tc.expected)
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)

	var level Level
	test.That(t, json.Unmarshal([]byte(`"warn"`), &level), test.ShouldBeNil)
	test.That(t, level, test.ShouldEqual, WARN)
	data, err := json.Marshal(ERROR)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldEqual, `"error"`)
}

func TestDebugMode(t *testing.T) {
	ctx := context.Background()
	test.That(t, IsDebugMode(ctx), test.ShouldBeFalse)
	test.That(t, IsDebugMode(EnableDebugMode(ctx, "")), test.ShouldBeTrue)
	test.That(t, IsDebugMode(EnableDebugMode(ctx, "drive")), test.ShouldBeTrue)

	notStdout := &bytes.Buffer{}
	logger := &impl{"fourws", NewAtomicLevelAt(WARN), true, []Appender{NewWriterAppender(notStdout)}}
	logger.CDebugf(ctx, "dropped %d", 1)
	test.That(t, notStdout.Len(), test.ShouldEqual, 0)
}
