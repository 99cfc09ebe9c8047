//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"yt-segment-extractor/cmd"
	"yt-segment-extractor/domain/launch"

	"github.com/cucumber/godog"
)

// mockUIRunner records the spawn call and the console output written
// before it happened
type mockUIRunner struct {
	output        *bytes.Buffer
	name          string
	args          []string
	calls         int
	outputAtSpawn string
	err           error
}

func (m *mockUIRunner) Run(ctx context.Context, name string, args ...string) error {
	m.outputAtSpawn = m.output.String()
	m.name = name
	m.args = args
	m.calls++
	return m.err
}

// launchContext holds test state for launch scenarios
type launchContext struct {
	cfg    launch.Config
	runner *mockUIRunner
	output *bytes.Buffer
	err    error
}

// SharedLaunchContext is reset before each scenario via Before hook
var SharedLaunchContext *launchContext

func getLaunchContext() *launchContext {
	return SharedLaunchContext
}

func InitializeLaunchScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		output := &bytes.Buffer{}
		SharedLaunchContext = &launchContext{
			cfg:    launch.DefaultConfig(),
			runner: &mockUIRunner{output: output},
			output: output,
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedLaunchContext = nil
		return c, nil
	})

	ctx.Step(`^the UI port is (\d+)$`, theUIPortIs)
	ctx.Step(`^the runner will fail with "([^"]*)"$`, theRunnerWillFailWith)
	ctx.Step(`^I launch the web UI$`, iLaunchTheWebUI)
	ctx.Step(`^I attempt to launch the web UI$`, iAttemptToLaunchTheWebUI)
	ctx.Step(`^the runner command should be "([^"]*)"$`, theRunnerCommandShouldBe)
	ctx.Step(`^the runner should have been started with arguments:$`, theRunnerShouldHaveBeenStartedWithArguments)
	ctx.Step(`^the runner should not have been started$`, theRunnerShouldNotHaveBeenStarted)
	ctx.Step(`^the console should show "([^"]*)"$`, theConsoleShouldShow)
	ctx.Step(`^the banner should appear before the runner starts$`, theBannerShouldAppearBeforeTheRunnerStarts)
	ctx.Step(`^the close prompt should be shown$`, theClosePromptShouldBeShown)
	ctx.Step(`^I should receive an error about the port$`, iShouldReceiveAnErrorAboutThePort)
}

func theUIPortIs(port int) error {
	l := getLaunchContext()
	l.cfg.Port = port
	return nil
}

func theRunnerWillFailWith(message string) error {
	l := getLaunchContext()
	l.runner.err = errors.New(message)
	return nil
}

func iLaunchTheWebUI() error {
	l := getLaunchContext()

	l.err = cmd.RunLaunchWithDependencies(
		context.Background(),
		l.runner,
		l.cfg,
		l.output,
		strings.NewReader("\n"),
	)

	if l.err != nil {
		return fmt.Errorf("unexpected error: %v", l.err)
	}
	return nil
}

func iAttemptToLaunchTheWebUI() error {
	l := getLaunchContext()

	l.err = cmd.RunLaunchWithDependencies(
		context.Background(),
		l.runner,
		l.cfg,
		l.output,
		strings.NewReader("\n"),
	)
	return nil
}

func theRunnerCommandShouldBe(expected string) error {
	l := getLaunchContext()
	if l.runner.name != expected {
		return fmt.Errorf("expected runner command %q, got %q", expected, l.runner.name)
	}
	return nil
}

func theRunnerShouldHaveBeenStartedWithArguments(table *godog.Table) error {
	l := getLaunchContext()
	if l.runner.calls == 0 {
		return fmt.Errorf("the runner was not started")
	}

	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header row
		}
		expectedArg := row.Cells[0].Value
		found := false
		for _, arg := range l.runner.args {
			if arg == expectedArg {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("expected argument %q not found in runner call: %v", expectedArg, l.runner.args)
		}
	}
	return nil
}

func theRunnerShouldNotHaveBeenStarted() error {
	l := getLaunchContext()
	if l.runner.calls != 0 {
		return fmt.Errorf("the runner was started %d time(s)", l.runner.calls)
	}
	return nil
}

func theConsoleShouldShow(expected string) error {
	l := getLaunchContext()
	if !strings.Contains(l.output.String(), expected) {
		return fmt.Errorf("expected console output to contain %q, got:\n%s", expected, l.output.String())
	}
	return nil
}

func theBannerShouldAppearBeforeTheRunnerStarts() error {
	l := getLaunchContext()
	if !strings.Contains(l.runner.outputAtSpawn, "YouTube Segment Extractor") {
		return fmt.Errorf("banner was not written before the runner started, output at spawn:\n%s", l.runner.outputAtSpawn)
	}
	return nil
}

func theClosePromptShouldBeShown() error {
	l := getLaunchContext()
	if !strings.Contains(l.output.String(), "Press Enter to close...") {
		return fmt.Errorf("close prompt not found in output:\n%s", l.output.String())
	}
	return nil
}

func iShouldReceiveAnErrorAboutThePort() error {
	l := getLaunchContext()
	if l.err == nil {
		return fmt.Errorf("expected an error but got none")
	}
	if !strings.Contains(l.err.Error(), "port") {
		return fmt.Errorf("expected error about the port, got: %v", l.err)
	}
	return nil
}
