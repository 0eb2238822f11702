package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/symmetry-wiki/symmetry-desktop/internal/api"
	"github.com/symmetry-wiki/symmetry-desktop/internal/article"
	"github.com/symmetry-wiki/symmetry-desktop/internal/comparison"
	"github.com/symmetry-wiki/symmetry-desktop/internal/config"
	"github.com/symmetry-wiki/symmetry-desktop/internal/logging"
	"github.com/symmetry-wiki/symmetry-desktop/internal/metrics"
	"github.com/symmetry-wiki/symmetry-desktop/internal/section"
	"github.com/symmetry-wiki/symmetry-desktop/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "org.symmetry-wiki.symmetry-desktop"
	AppName = "Symmetry"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	logger := logging.NewTextLogger(os.Stderr)
	slog.SetDefault(logger)
	config.LoadEnv(logger)

	logger.Info("Symmetry starting", slog.String("version", version))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	// Resolve the backend address before any service exists
	client, baseURL, err := newClient(ctx, logger)
	if err != nil {
		showFatal(myWindow, err)
		myWindow.ShowAndRun()
		return err
	}

	if addr := os.Getenv(metrics.EnvMetricsAddr); addr != "" {
		go func() {
			if err := metrics.Serve(ctx, addr, logger); err != nil {
				logger.Error("metrics endpoint failed", slog.Any("error", err))
			}
		}()
	}

	// Initialize services
	articleSvc := article.NewService(client, logger)
	comparisonSvc := comparison.NewService(client, logger)

	translation := section.NewTranslation(articleSvc, logger)
	comparer := section.NewComparison(comparisonSvc, logger)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, translation, comparer, baseURL, logger)

	// Show and run
	myWindow.ShowAndRun()
	return nil
}

func newClient(ctx context.Context, logger *slog.Logger) (*api.Client, string, error) {
	provider, err := config.Bootstrap(ctx, "", logger)
	if err != nil {
		return nil, "", err
	}

	baseURL, err := provider.GetBackendBaseURL()
	if err != nil {
		return nil, "", err
	}

	client, err := api.NewClient(baseURL,
		api.WithLogger(logger),
		api.WithUserAgent(fmt.Sprintf("%s/%s", api.DefaultUserAgent, version)))
	if err != nil {
		return nil, "", err
	}
	return client, baseURL, nil
}

// showFatal replaces the window content with the configuration error and
// quits the app when the dialog is dismissed.
func showFatal(window fyne.Window, err error) {
	localization := ui.NewLocalization()
	title := localization.GetText(ui.KeyConfigError)

	message := widget.NewLabel(err.Error())
	message.Wrapping = fyne.TextWrapWord
	window.SetContent(container.NewPadded(message))

	d := dialog.NewError(fmt.Errorf("%s: %w", title, err), window)
	d.SetOnClosed(func() { fyne.CurrentApp().Quit() })
	d.Show()
}
