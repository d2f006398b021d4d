package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает имя уровня без учета регистра
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return TRACE, nil
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", name)
	}
}

// Options задает вывод логгера
type Options struct {
	Dir             string   // каталог для файлов логов
	FileOutput      bool     // писать ли в файл
	MinConsoleLevel LogLevel // минимальный уровень для консоли
	MinFileLevel    LogLevel // минимальный уровень для файла
}

// DefaultOptions возвращает настройки по умолчанию: консоль от INFO, файл в logs/ со всеми уровнями
func DefaultOptions() Options {
	return Options{
		Dir:             "logs",
		FileOutput:      true,
		MinConsoleLevel: INFO,
		MinFileLevel:    TRACE,
	}
}

// Logger представляет систему логирования одного компонента
type Logger struct {
	mu              sync.Mutex
	component       string
	consoleLogger   *log.Logger
	fileLogger      *log.Logger
	file            *os.File
	minConsoleLevel LogLevel
	minFileLevel    LogLevel
}

// Логгер по умолчанию: только консоль, пока не вызван InitDefaultLogger
var defaultLogger = newConsoleLogger("", os.Stdout, INFO)

var defaultMu sync.RWMutex

func newConsoleLogger(component string, w io.Writer, level LogLevel) *Logger {
	return &Logger{
		component:       component,
		consoleLogger:   log.New(w, "", log.LstdFlags),
		minConsoleLevel: level,
		minFileLevel:    ERROR,
	}
}

// NewLogger создает логгер компонента с настройками по умолчанию
func NewLogger(component string) (*Logger, error) {
	return NewLoggerWithOptions(component, DefaultOptions())
}

// NewLoggerWithOptions создает логгер компонента
func NewLoggerWithOptions(component string, opts Options) (*Logger, error) {
	logger := newConsoleLogger(component, os.Stdout, opts.MinConsoleLevel)
	logger.minFileLevel = opts.MinFileLevel

	if !opts.FileOutput {
		return logger, nil
	}

	// Создаем директорию для логов
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории %s: %w", opts.Dir, err)
	}

	// Создаем файл для логов с временной меткой
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join(opts.Dir, fmt.Sprintf("%s_%s.log", component, timestamp))

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания файла логов: %w", err)
	}

	logger.file = file
	logger.fileLogger = log.New(file, "", log.LstdFlags)
	return logger, nil
}

// SetOutput перенаправляет консольный вывод (используется в тестах)
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.consoleLogger.SetOutput(w)
}

// SetLevels меняет минимальные уровни вывода
func (l *Logger) SetLevels(consoleLevel, fileLevel LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minConsoleLevel = consoleLevel
	l.minFileLevel = fileLevel
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.fileLogger = nil
	return err
}

// Log пишет сообщение заданного уровня
func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	toFile := l.fileLogger != nil && level >= l.minFileLevel
	toConsole := level >= l.minConsoleLevel
	if !toFile && !toConsole {
		return
	}

	prefix := "[" + level.String() + "] "
	if l.component != "" {
		prefix += "[" + l.component + "] "
	}
	message := prefix + fmt.Sprintf(format, args...)

	if toFile {
		l.fileLogger.Println(message)
	}
	if toConsole {
		l.consoleLogger.Println(message)
	}
}

func (l *Logger) Trace(format string, args ...interface{}) { l.Log(TRACE, format, args...) }
func (l *Logger) Debug(format string, args ...interface{}) { l.Log(DEBUG, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.Log(INFO, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.Log(WARN, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.Log(ERROR, format, args...) }

// InitDefaultLogger инициализирует глобальный логгер с настройками по умолчанию
func InitDefaultLogger(component string) error {
	return InitDefaultLoggerWithOptions(component, DefaultOptions())
}

// InitDefaultLoggerWithOptions инициализирует глобальный логгер
func InitDefaultLoggerWithOptions(component string, opts Options) error {
	logger, err := NewLoggerWithOptions(component, opts)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	old := defaultLogger
	defaultLogger = logger
	defaultMu.Unlock()

	if old != nil {
		old.Close()
	}
	return nil
}

// CloseDefaultLogger закрывает глобальный логгер
func CloseDefaultLogger() {
	defaultMu.RLock()
	logger := defaultLogger
	defaultMu.RUnlock()
	logger.Close()
}

// Default возвращает глобальный логгер
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Trace логирует сообщение уровня TRACE
func Trace(format string, args ...interface{}) {
	Default().Log(TRACE, format, args...)
}

// Debug логирует сообщение уровня DEBUG
func Debug(format string, args ...interface{}) {
	Default().Log(DEBUG, format, args...)
}

// Info логирует сообщение уровня INFO
func Info(format string, args ...interface{}) {
	Default().Log(INFO, format, args...)
}

// Warn логирует сообщение уровня WARN
func Warn(format string, args ...interface{}) {
	Default().Log(WARN, format, args...)
}

// Error логирует сообщение уровня ERROR
func Error(format string, args ...interface{}) {
	Default().Log(ERROR, format, args...)
}
