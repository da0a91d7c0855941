package utils

import (
	"fmt"
	"licaca-meal-log/structs"
	"strings"

	"github.com/spf13/viper"
)

var EnvConfig *structs.EnviromentModel

type EnvService struct {
	// ConfigFile overrides the default ./config.yml lookup when set.
	ConfigFile string
}

func (e *EnvService) InitEnv() {
	e.loadConfig()
	e.configToModel()
}

func (e *EnvService) loadConfig() {
	viper.SetDefault("router.port", 8080)
	viper.SetDefault("router.mode", "release")
	viper.SetDefault("database.client", "sqlite")
	viper.SetDefault("database.path", "licaca.db")
	viper.SetDefault("database.max_idle", 2)
	viper.SetDefault("rabbitmq.queue", "meal-created")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("server.name", "licaca")
	viper.SetDefault("client.base_url", "http://localhost:8080")

	if e.ConfigFile != "" {
		viper.SetConfigFile(e.ConfigFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yml")
		viper.AddConfigPath(".")
	}
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {

			// 找不到 config.yml 的話就抓取環境變數
			viper.AutomaticEnv()
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		} else {
			panic(fmt.Errorf("Fatal error config file: %s \n", err))
		}
	}
}

func (e *EnvService) configToModel() {
	var config structs.EnviromentModel
	config.Database.Client = viper.GetString("database.client")
	config.Database.Host = viper.GetString("database.host")
	config.Database.User = viper.GetString("database.user")
	config.Database.Password = viper.GetString("database.password")
	config.Database.Db = viper.GetString("database.name")
	config.Database.MaxIdle = uint(viper.GetInt("database.max_idle"))
	config.Database.MaxOpenConn = uint(viper.GetInt("database.max_open_conn"))
	config.Database.MaxLifeTime = viper.GetString("database.max_life_time")
	config.Database.Params = viper.GetString("database.params")
	config.Database.Port = viper.GetString("database.port")
	config.Database.Path = viper.GetString("database.path")
	config.Database.LogEnable = viper.GetInt("database.log_enable")
	config.RabbitMQ.Enable = viper.GetInt("rabbitmq.enable")
	config.RabbitMQ.Domain = viper.GetString("rabbitmq.domain")
	config.RabbitMQ.Queue = viper.GetString("rabbitmq.queue")
	config.Log.Dir = viper.GetString("log.dir")
	config.Log.Level = viper.GetString("log.level")
	config.Log.ElkEnable = viper.GetInt("log.elk.enable")
	config.Log.ElkIndex = viper.GetString("log.elk.index")
	config.Log.ElkURL = viper.GetString("log.elk.url")
	config.Log.LogstashEnable = viper.GetInt("log.logstash.enable")
	config.Log.LogstashURL = viper.GetString("log.logstash.url")
	config.Log.LogstashIndex = viper.GetString("log.logstash.index")
	config.Server.Name = viper.GetString("server.name")
	config.Router.Port = viper.GetInt("router.port")
	config.Router.Mode = viper.GetString("router.mode")
	config.Client.BaseURL = viper.GetString("client.base_url")
	EnvConfig = &config
}
