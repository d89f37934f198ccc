package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/interactive-instruments/etf-spi/cmd/etf/commands"
	"github.com/interactive-instruments/etf-spi/internal/app"
	"github.com/interactive-instruments/etf-spi/internal/build"
	"github.com/interactive-instruments/etf-spi/internal/core/domain"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockApp struct {
	runFunc    func(ctx context.Context, opts app.RunOptions) error
	suitesFunc func(ctx context.Context) ([]*domain.ExecutableTestSuite, error)
	cleanFunc  func(ctx context.Context, opts app.CleanOptions) error
}

func (m *mockApp) Run(ctx context.Context, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Suites(ctx context.Context) ([]*domain.ExecutableTestSuite, error) {
	if m.suitesFunc != nil {
		return m.suitesFunc(ctx)
	}
	return nil, nil
}

func (m *mockApp) Clean(ctx context.Context, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, opts)
	}
	return nil
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.RunOptions
		called := false

		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				captured = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "-s", "EIDa", "--suite", "EIDb", "-o", "EIDobj", "--label", "Nightly", "--watch", "--output", "linear"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.True(t, called)
		assert.Equal(t, app.RunOptions{
			Suites: []string{"EIDa", "EIDb"},
			Object: "EIDobj",
			Label:  "Nightly",
			Watch:  true,
			Output: "linear",
		}, captured)
	})

	t.Run("template only", func(t *testing.T) {
		var captured app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "-t", "EIDtpl"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "EIDtpl", captured.Template)
		assert.Empty(t, captured.Suites)
		assert.Equal(t, "auto", captured.Output)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(context.Context, app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "-s", "EIDa", "-o", "EIDobj"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("shows usage when nothing to run", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(context.Context, app.RunOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"run"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), "Usage:")
	})
}

func TestCommands_Suites(t *testing.T) {
	t.Run("renders table", func(t *testing.T) {
		mock := &mockApp{
			suitesFunc: func(context.Context) ([]*domain.ExecutableTestSuite, error) {
				return []*domain.ExecutableTestSuite{
					{EID: domain.NewEID("EIDbase"), Label: "Base", Version: "1.0.0", DriverID: "yaml", LowestLevelItemSize: 1},
					{
						EID: domain.NewEID("EIDmain"), Label: "Main suite", Version: "2.1.0", DriverID: "yaml", LowestLevelItemSize: 3,
						Dependencies: []domain.SuiteRef{
							{ID: domain.NewEID("EIDbase")},
							{ID: domain.NewEID("EIDremote"), DriverID: "other"},
						},
					},
				}, nil
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, new(bytes.Buffer))
		cli.SetArgs([]string{"suites"})

		require.NoError(t, cli.Execute(context.Background()))
		g := goldie.New(t)
		g.Assert(t, "suites", buf.Bytes())
	})

	t.Run("empty", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, new(bytes.Buffer))
		cli.SetArgs([]string{"suites"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "No executable test suites found\n", buf.String())
	})

	t.Run("error", func(t *testing.T) {
		mock := &mockApp{
			suitesFunc: func(context.Context) ([]*domain.ExecutableTestSuite, error) {
				return nil, domain.ErrConfigNotFound
			},
		}
		cli := commands.New(mock)
		cli.SetArgs([]string{"suites"})
		require.ErrorIs(t, cli.Execute(context.Background()), domain.ErrConfigNotFound)
	})
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.CleanOptions
	}{
		{name: "default", args: []string{"clean"}, want: app.CleanOptions{Results: true}},
		{name: "store", args: []string{"clean", "--store"}, want: app.CleanOptions{Store: true}},
		{name: "all", args: []string{"clean", "-a"}, want: app.CleanOptions{Store: true, Results: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured app.CleanOptions
			mock := &mockApp{
				cleanFunc: func(_ context.Context, opts app.CleanOptions) error {
					captured = opts
					return nil
				},
			}
			cli := commands.New(mock)
			cli.SetArgs(tt.args)
			require.NoError(t, cli.Execute(context.Background()))
			assert.Equal(t, tt.want, captured)
		})
	}
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), build.Version)
	assert.Contains(t, buf.String(), "etf version")
	assert.Contains(t, buf.String(), "drivers: ")

	t.Run("short", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"version", "--short"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, build.Version+"\n", buf.String())
	})
}
