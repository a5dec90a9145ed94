package config

// Asynq — подключение к Redis для отложенных задач.
// Адрес опционален: без него истечение pending-сделок не планируется.
type Asynq struct {
	RedisAddress  string `env:"ASYNQ_REDIS_ADDRESS"`
	RedisUsername string `env:"ASYNQ_REDIS_USERNAME"`
	RedisPassword string `env:"ASYNQ_REDIS_PASSWORD" json:"-"`
	RedisDB       int    `env:"ASYNQ_REDIS_DB" envDefault:"0"`
}
