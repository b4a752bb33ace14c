// SPDX-License-Identifier: GPL-3.0-only

package commons

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var envLoaded = false

func LoadEnvFile() {
	if envLoaded {
		return
	}
	args := os.Args[1:]
	for i, arg := range args {
		if arg == "--env-file" && i+1 < len(args) {
			envFile := args[i+1]
			fmt.Printf("Loading environment variables from file: %s\n", envFile)
			if err := loadEnvFrom(envFile); err != nil {
				fmt.Printf("Failed to load env file: %s\n", err)
			}
			envLoaded = true
			return
		}
	}
	envLoaded = true
}

func loadEnvFrom(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		// real environment wins over the file
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		os.Setenv(key, val)
	}
	return scanner.Err()
}

// GetEnv returns the value of key, or the first default when it is unset or empty.
func GetEnv(key string, defaultValue ...string) string {
	LoadEnvFile()
	if v := os.Getenv(key); v != "" {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func GetEnvInt(key string, defaultValue int) int {
	v := GetEnv(key)
	if v == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		Logger.Warnf("Invalid integer for %s: %q, using %d", key, v, defaultValue)
		return defaultValue
	}
	return i
}

func GetEnvBool(key string, defaultValue bool) bool {
	v := GetEnv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		Logger.Warnf("Invalid boolean for %s: %q, using %t", key, v, defaultValue)
		return defaultValue
	}
	return b
}
