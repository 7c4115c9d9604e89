package config

import (
	"os"
)

type Config struct {
	MongoURI      string
	MongoDatabase string
	HTTPPort      string
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "finance",
		HTTPPort:      "9446",
	}

	envMongoURI := os.Getenv("MONGO_URI")
	envMongoDatabase := os.Getenv("MONGO_DATABASE")
	envHTTPPort := os.Getenv("HTTP_PORT")

	if len(envMongoURI) != 0 {
		env.MongoURI = envMongoURI
	}

	if len(envMongoDatabase) != 0 {
		env.MongoDatabase = envMongoDatabase
	}

	if len(envHTTPPort) != 0 {
		env.HTTPPort = envHTTPPort
	}

	return &env, nil
}
