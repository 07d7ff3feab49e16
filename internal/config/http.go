package config

type HTTP struct {
	Port    uint32 `env:"PORT" envDefault:"3000"`
	AppName string `env:"APP_NAME" envDefault:"QuickSell POS v1.0"`
}
