package structs

type EnviromentModel struct {
	Database Database
	RabbitMQ RabbitMQ
	Log      Log
	Server   Server
	Router   Router
	Client   Client
}

type Server struct {
	Name string
}

type Database struct {
	Client      string
	MaxIdle     uint
	MaxLifeTime string
	MaxOpenConn uint
	User        string
	Password    string
	Host        string
	Db          string
	Params      string
	Port        string
	Path        string
	LogEnable   int
}

type RabbitMQ struct {
	Enable int
	Domain string
	Queue  string
}

type Log struct {
	Dir            string
	Level          string
	ElkEnable      int
	ElkIndex       string
	ElkURL         string
	LogstashEnable int
	LogstashURL    string
	LogstashIndex  string
}

type Router struct {
	Port int
	Mode string
}

type Client struct {
	BaseURL string
}
