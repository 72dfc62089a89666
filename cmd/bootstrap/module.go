package bootstrap

import (
	"tablebook/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	MessagingModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
