package logger

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// New инициализирует логгер. В release режиме gin пишем JSON с уровнем Info, в остальных окружениях
// текст с уровнем Debug.
func New(output io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(output)

	if gin.Mode() == gin.ReleaseMode {
		l.SetFormatter(new(logrus.JSONFormatter))
		l.SetLevel(logrus.InfoLevel)
		return l
	}

	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.DebugLevel)
	return l
}

// SetLevel переопределяет уровень логгера. Пустая строка оставляет уровень по умолчанию.
func SetLevel(l *logrus.Logger, level string) error {
	if level == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("set log level: %w", err)
	}
	l.SetLevel(lvl)
	return nil
}
