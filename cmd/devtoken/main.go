// Команда devtoken выпускает HS256-токен для локальной разработки,
// подписанный секретом auth.jwt_secret_key из конфига.
package main

import (
	"os"

	"github.com/magabrotheeeer/focuszen/internal/config"
)

func main() {
	if err := newRootCmd(config.MustLoad).Execute(); err != nil {
		os.Exit(1)
	}
}
