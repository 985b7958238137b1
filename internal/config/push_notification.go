package config

type PushConfig struct {
	Provider string     `yaml:"provider"`
	FCM      *FCMConfig `yaml:"fcm"`
}

type FCMConfig struct {
	ServerKey   string `yaml:"server_key"`
	ProjectID   string `yaml:"project_id"`
	Credentials string `yaml:"credentials_file"`
}

func loadPushConfig() *PushConfig {
	return &PushConfig{
		Provider: getEnv("PUSH_PROVIDER", "fcm"),
		FCM: &FCMConfig{
			ServerKey:   getEnv("FCM_SERVER_KEY", ""),
			ProjectID:   getEnv("FCM_PROJECT_ID", ""),
			Credentials: getEnv("FCM_CREDENTIALS_FILE", ""),
		},
	}
}
