/*
 *     Copyright 2023 The TopChef Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logger

import (
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	CoreLogFileName = "core.log"
	GinLogFileName  = "gin.log"
)

const (
	defaultRotateMaxSize    = 300
	defaultRotateMaxBackups = 50
	defaultRotateMaxAge     = 7
)

const encodeTimeFormat = "2006-01-02 15:04:05.000"

var coreLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// CreateLogger builds a rotating file logger.
func CreateLogger(filePath string, compress bool) (*zap.Logger, error) {
	rotateConfig := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    defaultRotateMaxSize,
		MaxAge:     defaultRotateMaxAge,
		MaxBackups: defaultRotateMaxBackups,
		LocalTime:  true,
		Compress:   compress,
	}
	syncer := zapcore.AddSync(rotateConfig)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(encodeTimeFormat)

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		syncer,
		coreLevel,
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.WarnLevel), zap.AddCallerSkip(1)), nil
}

// InitFileLoggers redirects the global loggers to rotating files under logDir.
// Console loggers from init stay in place when logDir is empty.
func InitFileLoggers(logDir string, compress bool) error {
	if logDir == "" {
		return nil
	}

	coreLog, err := CreateLogger(filepath.Join(logDir, CoreLogFileName), compress)
	if err != nil {
		return err
	}
	SetCoreLogger(coreLog.Sugar())

	ginLog, err := CreateLogger(filepath.Join(logDir, GinLogFileName), compress)
	if err != nil {
		return err
	}
	SetGinLogger(ginLog.Sugar())

	return nil
}

// SetCoreLevel changes the level of file-backed loggers.
func SetCoreLevel(level zapcore.Level) {
	coreLevel.SetLevel(level)
}
