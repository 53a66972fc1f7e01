package config

type AppConfig struct {
	Server    ServerConfig
	Collector CollectorConfig
	Log       LogConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	serverCfg, err := LoadServer()
	if err != nil {
		return AppConfig{}, err
	}
	collectorCfg, err := LoadCollector()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Server:    serverCfg,
		Collector: collectorCfg,
		Log:       logCfg,
	}, nil
}
