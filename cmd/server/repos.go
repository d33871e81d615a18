package main

import (
	"alcyxob/tracker-app/internal/config"
	"alcyxob/tracker-app/internal/repository"
	"alcyxob/tracker-app/internal/repository/memory"
	"alcyxob/tracker-app/internal/repository/mongo"
	"context"
	"log"
	"time"
)

type repositories struct {
	users    repository.UserRepository
	books    repository.BookRepository
	activity repository.ActivityRepository
	health   repository.HealthRepository
	exports  repository.ExportRepository
}

func memoryRepositories() repositories {
	return repositories{
		users:    memory.NewUserRepository(),
		books:    memory.NewBookRepository(),
		activity: memory.NewActivityRepository(),
		health:   memory.NewHealthRepository(),
		exports:  memory.NewExportRepository(),
	}
}

// mongoRepositories connects to MongoDB and returns the repositories plus a
// function that closes the connection.
func mongoRepositories(cfg config.DatabaseConfig) (repositories, func()) {
	dbClient, err := mongo.ConnectDB(cfg.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	appDB := dbClient.Database(cfg.Name)
	log.Println("Database connection established.")

	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB)
		log.Println("Index creation process completed.")
	}()

	repos := repositories{
		users:    mongo.NewMongoUserRepository(appDB),
		books:    mongo.NewMongoBookRepository(appDB),
		activity: mongo.NewMongoActivityRepository(appDB),
		health:   mongo.NewMongoHealthRepository(appDB),
		exports:  mongo.NewMongoExportRepository(appDB),
	}
	return repos, func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}
}
