package log

import (
	"fmt"
	"io"
	"licaca-meal-log/structs"
	"licaca-meal-log/utils"
	"net"
	"os"
	"path"
	"time"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"
)

type LogService struct{}

// LoggerInit builds a logger named after the component it serves. Output goes
// to <log.dir>/<date>/<name>.log when a log dir is configured, stdout otherwise.
func (l *LogService) LoggerInit(name string) *logrus.Logger {
	var config structs.Log
	if utils.EnvConfig != nil {
		config = utils.EnvConfig.Log
	}

	//实例化
	logger := logrus.New()
	logger.Out = l.output(config.Dir, name)

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if config.ElkEnable == 1 {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{config.ElkURL},
		})
		if err != nil {
			logger.Debug(err.Error())
		} else {
			hook, err := elogrus.NewAsyncElasticHook(client, "licaca-meal-log", level, config.ElkIndex)
			if err != nil {
				logger.Debug(err.Error())
			} else {
				logger.Hooks.Add(hook)
			}
		}
	}

	if config.LogstashEnable == 1 {
		conn, err := net.Dial("udp", config.LogstashURL)
		if err != nil {
			logger.Debug(err)
		} else {
			hook := logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": "licaca-meal-log", "index": config.LogstashIndex}))
			logger.Hooks.Add(hook)
		}
	}

	return logger
}

func (l *LogService) output(dir, name string) io.Writer {
	if dir == "" {
		return os.Stdout
	}
	logFilePath := path.Join(dir, time.Now().Format("2006-01-02"))
	if err := os.MkdirAll(logFilePath, 0755); err != nil {
		fmt.Println(err.Error())
		return os.Stdout
	}
	src, err := os.OpenFile(path.Join(logFilePath, name+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Println("err", err)
		return os.Stdout
	}
	return src
}
