// Package providers builds the service's object graph from configuration.
package providers

import (
	"log/slog"
	"time"

	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/config"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/infra/database"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/infra/lock"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/infra/repository"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/infra/session"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/sparql"
	"github.com/kanselarij-vlaanderen/agenda-submission-service/internal/usecase"
)

// NewStore constructs the SPARQL client for the configured endpoints.
func NewStore(conf config.Sparql) *sparql.Client {
	return sparql.NewClient(conf.QueryEndpoint, conf.UpdateEndpoint)
}

// NewLockTable picks the lock backend. Redis shares keys across replicas;
// memory is enough for a single instance.
func NewLockTable(conf config.Locks) usecase.LockTable {
	if conf.Backend == "redis" {
		client := database.NewRedis(conf.RedisAddr, conf.RedisPassword, conf.RedisDB)
		return lock.NewRedis(client, time.Duration(conf.TTLSeconds)*time.Second)
	}
	return lock.NewMemory()
}

// NewSessionChecker builds the caching session verifier.
func NewSessionChecker(conf config.Session, store *sparql.Client) *session.Checker {
	ttl := time.Duration(conf.TTLSeconds) * time.Second
	var cache session.Cache
	if conf.Backend == "memcached" {
		cache = session.NewMemcachedCache(database.NewMemcached(conf.MemcachedAddr), ttl)
	} else {
		cache = session.NewMemoryCache(ttl)
	}
	return session.NewChecker(repository.NewSessionRepository(store), cache)
}

// NewSubmitter wires the full submit pipeline.
func NewSubmitter(conf config.Config, store *sparql.Client, locks usecase.LockTable, log *slog.Logger) *usecase.Submitter {
	saga := usecase.NewSaga(store, conf.Sparql.PieceBatchSize, conf.Sparql.SinglePersistQuery, log)
	sequencer := usecase.NewSequencer(repository.NewAgendaRepository(store))
	return usecase.NewSubmitter(
		repository.NewMeetingRepository(store),
		repository.NewSubcaseRepository(store),
		repository.NewFetchRepository(store),
		repository.NewSubmissionRepository(store.Sudo()),
		saga,
		sequencer,
		locks,
		time.Duration(conf.Server.PostWriteDelayMs)*time.Millisecond,
		log,
	)
}

// NewReorderer wires the standalone resequencing operation.
func NewReorderer(conf config.Config, store *sparql.Client, locks usecase.LockTable, log *slog.Logger) *usecase.Reorderer {
	agendas := repository.NewAgendaRepository(store)
	return usecase.NewReorderer(
		agendas,
		usecase.NewSequencer(agendas),
		locks,
		time.Duration(conf.Server.PostWriteDelayMs)*time.Millisecond,
		log,
	)
}
