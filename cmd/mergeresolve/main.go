package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bigsur-network/mergedag/domain/merger"
	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
	"github.com/bigsur-network/mergedag/domain/merger/processes/rejectionenumerator"
	"github.com/bigsur-network/mergedag/infrastructure/logger"
	"github.com/bigsur-network/mergedag/util/panics"
)

var log = logger.RegisterSubSystem("MRSV")

func main() {
	defer panics.HandlePanic(log, nil)

	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing command-line arguments: %s\n", err)
		os.Exit(1)
	}

	level, ok := logger.LevelFromString(cfg.LogLevel)
	if !ok {
		fmt.Fprintf(os.Stderr, "Invalid log level: %s\n", cfg.LogLevel)
		os.Exit(1)
	}
	logger.InitLogStdout(level)
	logger.SetLogLevels(level)
	defer logger.Close()

	err = resolveScenario(cfg)
	if err != nil {
		log.Errorf("Failed to resolve scenario: %+v", err)
		logger.Close()
		os.Exit(1)
	}
}

func resolveScenario(cfg *configFlags) error {
	s, err := loadScenario(cfg.Scenario)
	if err != nil {
		return err
	}

	collaborators, err := buildCollaborators(s)
	if err != nil {
		return err
	}

	factory := merger.NewFactory()
	if cfg.Greedy {
		factory.SetEnumerationStrategy(&rejectionenumerator.GreedyStrategy{})
	}
	resolver := factory.NewMergeResolver(collaborators, collaborators, collaborators)

	resolution, err := resolver.ResolveDAG(collaborators.tips, collaborators.latestFringe,
		collaborators.acceptedFinally, collaborators.rejectedFinally, collaborators.initValues)
	if err != nil {
		return err
	}

	fmt.Printf("accepted: %s\n", renderDeploys(collaborators, resolution.Accepted))
	fmt.Printf("rejected: %s\n", renderDeploys(collaborators, resolution.Rejected))
	return nil
}

func renderDeploys(collaborators *scenarioCollaborators, deployIDs []*externalapi.DomainDeployID) string {
	if len(deployIDs) == 0 {
		return "(none)"
	}

	names := make([]string, 0, len(deployIDs))
	for _, deployID := range deployIDs {
		names = append(names, collaborators.deployName(deployID))
	}
	return strings.Join(names, ", ")
}
