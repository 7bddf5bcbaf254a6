package graph

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/recipegraph/internal/errors"
	"github.com/rohankatakam/recipegraph/internal/logging"
)

// Options configures the connection pool and query limits
type Options struct {
	URI      string
	User     string
	Password string
	Database string

	MaxPoolSize           int
	AcquisitionTimeout    time.Duration
	MaxConnectionLifetime time.Duration

	// QueryTimeout caps the per-operation read timeouts when positive
	QueryTimeout time.Duration
	// WarningRatio is the share of a timeout after which a successful query is logged as slow
	WarningRatio float64
}

// QueryObserver receives one call per executed query
type QueryObserver interface {
	ObserveQuery(operation string, duration time.Duration, err error)
}

// Client owns the Neo4j driver (the connection pool) for the lifetime of the process.
// It is safe for concurrent use; every query borrows its own session.
type Client struct {
	driver       neo4j.DriverWithContext
	logger       logrus.FieldLogger
	database     string
	maxPoolSize  int
	queryTimeout time.Duration
	monitor      *TimeoutMonitor
	observer     QueryObserver
}

// NewClient creates the driver, verifies connectivity and returns a ready client
func NewClient(ctx context.Context, opts Options, logger logrus.FieldLogger) (*Client, error) {
	if opts.URI == "" || opts.User == "" || opts.Password == "" {
		return nil, errors.ConfigErrorf("neo4j credentials missing: uri=%s, user=%s", opts.URI, opts.User)
	}
	if opts.MaxPoolSize <= 0 {
		opts.MaxPoolSize = 50
	}

	driver, err := neo4j.NewDriverWithContext(opts.URI,
		neo4j.BasicAuth(opts.User, opts.Password, ""),
		func(config *neo4j.Config) {
			config.MaxConnectionPoolSize = opts.MaxPoolSize
			if opts.AcquisitionTimeout > 0 {
				config.ConnectionAcquisitionTimeout = opts.AcquisitionTimeout
			}
			if opts.MaxConnectionLifetime > 0 {
				config.MaxConnectionLifetime = opts.MaxConnectionLifetime
			}
			config.ConnectionLivenessCheckTimeout = 5 * time.Second
			config.SocketConnectTimeout = 5 * time.Second
			config.SocketKeepalive = true
		})
	if err != nil {
		return nil, errors.ConfigErrorf("failed to create neo4j driver: %v", err)
	}

	// Fail fast on startup
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, errors.DatabaseErrorf(err, "failed to connect to neo4j at %s", opts.URI)
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger = logger.WithField("component", "neo4j")
	logger.WithFields(logrus.Fields{
		"uri":           opts.URI,
		"user":          opts.User,
		"database":      opts.Database,
		"max_pool_size": opts.MaxPoolSize,
	}).Info("neo4j client connected")

	return &Client{
		driver:       driver,
		logger:       logger,
		database:     opts.Database,
		maxPoolSize:  opts.MaxPoolSize,
		queryTimeout: opts.QueryTimeout,
		monitor:      NewTimeoutMonitor(logger, opts.WarningRatio),
	}, nil
}

// SetObserver registers a query observer (metrics)
func (c *Client) SetObserver(observer QueryObserver) {
	c.observer = observer
}

// Close closes the Neo4j driver connection
func (c *Client) Close(ctx context.Context) error {
	if err := c.driver.Close(ctx); err != nil {
		return fmt.Errorf("failed to close neo4j driver: %w", err)
	}
	c.logger.Info("neo4j client closed")
	return nil
}

// HealthCheck verifies Neo4j connectivity
func (c *Client) HealthCheck(ctx context.Context) error {
	txConfig := GetConfigForOperation(OpHealthCheck)
	checkCtx, cancel := context.WithTimeout(ctx, txConfig.Timeout)
	defer cancel()

	if err := c.driver.VerifyConnectivity(checkCtx); err != nil {
		return fmt.Errorf("neo4j health check failed: %w", err)
	}
	return nil
}

// Read runs one read-only Cypher statement in its own session and returns every record.
// The session is closed on all paths. The statement runs as an auto-commit
// transaction so the driver does not retry it.
func (c *Client) Read(ctx context.Context, operation, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	txConfig := readConfig(ctx, operation, c.queryTimeout)

	var records []*neo4j.Record
	start := time.Now()
	err := c.monitor.MonitorWithContext(ctx, operation, txConfig.Timeout, func(ctx context.Context) error {
		session := c.driver.NewSession(ctx, neo4j.SessionConfig{
			DatabaseName: c.database,
			AccessMode:   neo4j.AccessModeRead,
		})
		defer session.Close(ctx)

		result, err := session.Run(ctx, cypher, params, txConfig.AsNeo4jConfig()...)
		if err != nil {
			return err
		}
		records, err = result.Collect(ctx)
		return err
	})
	if c.observer != nil {
		c.observer.ObserveQuery(operation, time.Since(start), err)
	}
	if err != nil {
		return nil, classifyError(operation, err)
	}

	c.logger.WithFields(logrus.Fields{
		"operation":    operation,
		"record_count": len(records),
	}).Debug("query executed")
	return records, nil
}

// readConfig resolves the transaction config of a read: the per-operation
// timeout lowered to ceiling when ceiling is positive, tagged with the request id
func readConfig(ctx context.Context, operation string, ceiling time.Duration) TransactionConfig {
	txConfig := GetConfigForOperation(operation)
	if ceiling > 0 && ceiling < txConfig.Timeout {
		txConfig = txConfig.WithTimeout(ceiling)
	}
	if id := logging.RequestIDFromContext(ctx); id != "" {
		txConfig = txConfig.WithCustomMetadata("request_id", id)
	}
	return txConfig
}

// Statement is a Cypher statement with its parameters
type Statement struct {
	Query  string
	Params map[string]any
}

// ExecuteWrite runs the statements in a single write transaction
func (c *Client) ExecuteWrite(ctx context.Context, operation string, statements []Statement) error {
	txConfig := GetConfigForOperation(operation)

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	start := time.Now()
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for i, stmt := range statements {
			if _, err := tx.Run(ctx, stmt.Query, stmt.Params); err != nil {
				return nil, fmt.Errorf("statement %d failed: %w", i, err)
			}
		}
		return nil, nil
	}, txConfig.AsNeo4jConfig()...)
	if c.observer != nil {
		c.observer.ObserveQuery(operation, time.Since(start), err)
	}
	if err != nil {
		return classifyError(operation, err)
	}

	c.logger.WithFields(logrus.Fields{
		"operation":  operation,
		"statements": len(statements),
	}).Info("write transaction committed")
	return nil
}

// Database returns the configured database name
func (c *Client) Database() string {
	return c.database
}

// classifyError maps driver failures onto the service error taxonomy.
// Timeouts (client deadline or server-side transaction timeout) are Unavailable;
// everything else is a Database failure.
func classifyError(operation string, err error) error {
	if isTimeout(err) {
		return errors.UnavailableError(err, "graph query timed out").
			WithContext("operation", operation)
	}
	if neo4j.IsConnectivityError(err) {
		return errors.DatabaseError(err, "graph store unreachable").
			WithContext("operation", operation)
	}
	return errors.DatabaseError(err, "graph query failed").
		WithContext("operation", operation)
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var neoErr *neo4j.Neo4jError
	if stderrors.As(err, &neoErr) {
		return strings.Contains(neoErr.Code, "TransactionTimedOut")
	}
	return false
}
