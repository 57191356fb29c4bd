// Package notice carries the user-facing feedback messages handlers
// return alongside entity data. Rendering is the client's concern.
package notice

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notice struct {
	Message string `json:"message"`
	Level   Level  `json:"level"`
}

func Success(msg string) Notice {
	return Notice{Message: msg, Level: LevelSuccess}
}

func Error(msg string) Notice {
	return Notice{Message: msg, Level: LevelError}
}
