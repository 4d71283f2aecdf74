package logger

import (
	"log"

	"go.uber.org/zap"
)

// Init 初始化全局 zap logger，之后统一通过 zap.L() 使用
func Init() {
	l, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	zap.ReplaceGlobals(l)
}
