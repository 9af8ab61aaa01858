package logging

import (
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"time"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"

	"github.com/aguxez/babyfood/config"
)

const hookHost = "babyfood"

// New builds the logger described by cfg. Hooks that fail to connect are
// reported on the logger itself and skipped. The returned closer releases
// the log file and the logstash connection.
func New(cfg config.LogConfig) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level := logrus.InfoLevel
	if cfg.Level != "" {
		parsed, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing log level: %w", err)
		}
		level = parsed
	}
	logger.SetLevel(level)

	var closers multiCloser

	if cfg.Dir != "" {
		f, err := openDailyFile(cfg.Dir, cfg.Name, time.Now())
		if err != nil {
			return nil, nil, err
		}
		logger.SetOutput(f)
		closers = append(closers, f)
	}

	if cfg.Elk.Enable {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{cfg.Elk.URL},
		})
		if err != nil {
			logger.WithError(err).Warn("creating elasticsearch client")
		} else if hook, err := elogrus.NewAsyncElasticHook(client, hookHost, level, cfg.Elk.Index); err != nil {
			logger.WithError(err).Warn("creating elasticsearch hook")
		} else {
			logger.AddHook(hook)
		}
	}

	if cfg.Logstash.Enable {
		conn, err := net.Dial("udp", cfg.Logstash.URL)
		if err != nil {
			logger.WithError(err).Warn("connecting to logstash")
		} else {
			logger.AddHook(logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": hookHost})))
			closers = append(closers, conn)
		}
	}

	return logger, closers, nil
}

// openDailyFile opens <dir>/<yyyy-mm-dd>/<name>.log for appending.
func openDailyFile(dir, name string, now time.Time) (*os.File, error) {
	if name == "" {
		name = hookHost
	}
	dayDir := filepath.Join(dir, now.Format("2006-01-02"))
	if err := os.MkdirAll(dayDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dayDir, name+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
