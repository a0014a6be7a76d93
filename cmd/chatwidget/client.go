package main

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/tgifai/chatwidget/internal/config"
	"github.com/tgifai/chatwidget/internal/pkg/logs"
	"github.com/tgifai/chatwidget/internal/pkg/prometheus"
	"github.com/tgifai/chatwidget/pkg/widget"
)

var (
	cSuccess = color.New(color.FgGreen)
	cError   = color.New(color.FgRed)
	cDim     = color.New(color.FgHiBlack)
)

// loadConfig reads the file named by --config, falling back to defaults when
// it does not exist, and initializes logging from it.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfgPath := cmd.String("config")
	cfg, err := config.Load(cfgPath, true)
	if err != nil {
		return nil, fmt.Errorf("loading config error: %w", err)
	}
	if err = initLogger(cfg.Logging); err != nil {
		return nil, fmt.Errorf("init logger error: %w", err)
	}
	return cfg, nil
}

func initLogger(cfg config.LoggingConfig) error {
	return logs.Init(logs.Options{
		Level:      cfg.Level,
		Format:     cfg.Format,
		Output:     cfg.Output,
		File:       cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
	})
}

func newClient(cmd *cli.Command) (*widget.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	cc := cfg.Client
	if cc.ChatbotID == "" {
		return nil, errors.New("client.chatbot_id is required (or set CHATWIDGET_CHATBOT_ID)")
	}

	metrics, err := widget.NewMetricsObserver(prometheus.GetRegistry())
	if err != nil {
		return nil, fmt.Errorf("register client metrics: %w", err)
	}

	opts := []widget.Option{
		widget.WithTimeout(cc.Timeout()),
		widget.WithUploadURL(cc.UploadURL),
		widget.WithObserver(widget.MultiObserver(widget.LogObserver(), metrics)),
	}
	if cc.Compression {
		opts = append(opts, widget.WithCompression())
	}

	return widget.New(widget.Config{
		APIBaseURL: cc.APIBaseURL,
		ChatbotID:  cc.ChatbotID,
		SessionID:  cc.SessionID,
	}, opts...), nil
}

// report prints the envelope and turns a failed one into an error so the
// process exits non-zero.
func report(op string, resp *widget.Response) error {
	if resp == nil {
		return fmt.Errorf("%s: no response", op)
	}
	if !resp.Success {
		cError.Printf("✗ %s failed\n", op)
		return fmt.Errorf("%s: %s", op, resp.Error)
	}

	cSuccess.Printf("✓ %s\n", op)
	body, err := sonic.ConfigDefault.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	fmt.Println(string(body))
	return nil
}
