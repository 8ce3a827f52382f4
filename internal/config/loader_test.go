package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "db.internal")

	// 已定义变量取环境值
	assert.Equal(t, "host: db.internal", expandEnv("host: ${TEST_DB_HOST:localhost}"))

	// 未定义变量取默认值
	assert.Equal(t, "port: 5432", expandEnv("port: ${TEST_UNDEFINED_PORT:5432}"))

	// 默认值允许为空
	assert.Equal(t, "password: ", expandEnv("password: ${TEST_UNDEFINED_PASSWORD:}"))

	// 无默认值且未定义时保留原样
	assert.Equal(t, "secret: ${TEST_NO_DEFAULT}", expandEnv("secret: ${TEST_NO_DEFAULT}"))

	// 普通文本不受影响
	assert.Equal(t, "plain value", expandEnv("plain value"))
}

func TestExpandEnvMultiplePlaceholders(t *testing.T) {
	t.Setenv("TEST_A", "1")
	t.Setenv("TEST_B", "2")

	out := expandEnv("${TEST_A:x}-${TEST_B:y}-${TEST_C:z}")
	assert.Equal(t, "1-2-z", out)
}
