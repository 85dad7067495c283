package pipeline

import "strings"

// MatchKind controls how a category rule may match a module suffix.
type MatchKind string

const (
	// MatchExact rules match only on case-insensitive equality.
	MatchExact MatchKind = "exact"
	// MatchSubstring rules match on equality or as a case-insensitive
	// substring of the module suffix.
	MatchSubstring MatchKind = "substring"
)

// Rule maps a module name suffix to a category. Rules are evaluated in
// declaration order; earlier rules win when substring matching is
// ambiguous.
type Rule struct {
	Kind     MatchKind
	Key      string
	Category string
}

// modulePrefix is stripped from module identifiers before matching.
const modulePrefix = "Az."

// ResolveCategory maps a module identifier to its category using the
// ordered rule list. The exact pass runs to completion over every rule
// before the substring pass begins, so an exact match always wins
// regardless of rule order. Returns "Other" when nothing matches.
func ResolveCategory(module string, rules []Rule) string {
	suffix := strings.TrimPrefix(module, modulePrefix)

	for _, r := range rules {
		if strings.EqualFold(suffix, r.Key) {
			return r.Category
		}
	}

	lower := strings.ToLower(suffix)
	for _, r := range rules {
		if r.Kind != MatchSubstring {
			continue
		}
		if strings.Contains(lower, strings.ToLower(r.Key)) {
			return r.Category
		}
	}

	return "Other"
}

// DefaultRules returns the curated category table. Every entry permits
// substring matching; order matters for the substring pass only.
func DefaultRules() []Rule {
	return []Rule{
		{MatchSubstring, "Accounts", "Authentication"},
		{MatchSubstring, "Compute", "Compute"},
		{MatchSubstring, "Network", "Networking"},
		{MatchSubstring, "Storage", "Storage"},
		{MatchSubstring, "Sql", "Database"},
		{MatchSubstring, "CosmosDb", "Database"},
		{MatchSubstring, "Redis", "Database"},
		{MatchSubstring, "Monitor", "Monitoring"},
		{MatchSubstring, "Advisor", "Governance"},
		{MatchSubstring, "Policy", "Governance"},
		{MatchSubstring, "Security", "Security"},
		{MatchSubstring, "KeyVault", "Security"},
		{MatchSubstring, "Identity", "Identity"},
		{MatchSubstring, "Aks", "Containers"},
		{MatchSubstring, "ContainerInstance", "Containers"},
		{MatchSubstring, "ContainerRegistry", "Containers"},
		{MatchSubstring, "App", "App Services"},
		{MatchSubstring, "Websites", "App Services"},
		{MatchSubstring, "Functions", "App Services"},
		{MatchSubstring, "Logic", "Integration"},
		{MatchSubstring, "ServiceBus", "Messaging"},
		{MatchSubstring, "EventHub", "Messaging"},
		{MatchSubstring, "EventGrid", "Messaging"},
		{MatchSubstring, "NotificationHubs", "Messaging"},
		{MatchSubstring, "ApiManagement", "API Management"},
		{MatchSubstring, "Resources", "Resources"},
		{MatchSubstring, "ResourceMover", "Resources"},
		{MatchSubstring, "Cdn", "Networking"},
		{MatchSubstring, "Dns", "Networking"},
		{MatchSubstring, "FrontDoor", "Networking"},
		{MatchSubstring, "TrafficManager", "Networking"},
		{MatchSubstring, "VirtualWan", "Networking"},
		{MatchSubstring, "PowerBIEmbedded", "Analytics"},
		{MatchSubstring, "StreamAnalytics", "Analytics"},
		{MatchSubstring, "MachineLearning", "AI & ML"},
		{MatchSubstring, "CognitiveServices", "AI & ML"},
		{MatchSubstring, "DataFactory", "Data"},
		{MatchSubstring, "DataLakeStore", "Data"},
		{MatchSubstring, "Synapse", "Data"},
		{MatchSubstring, "Databricks", "Data"},
		{MatchSubstring, "Batch", "Compute"},
		{MatchSubstring, "HDInsight", "Compute"},
		{MatchSubstring, "ServiceFabric", "Compute"},
		{MatchSubstring, "Automation", "Management"},
		{MatchSubstring, "Backup", "Management"},
		{MatchSubstring, "RecoveryServices", "Management"},
		{MatchSubstring, "OperationalInsights", "Monitoring"},
	}
}
