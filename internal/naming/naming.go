package naming

import (
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/sourceplane/litetopo/internal/model"
)

// UniqueLength is the number of hash characters appended to the solution name
const UniqueLength = 5

// lowercase alphabet so the token is usable in lower-case-only names
var tokenEncoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// Charset restricts the characters a name may contain
type Charset int

const (
	AlnumHyphen Charset = iota
	LowerAlnum
	LowerAlnumHyphen
	Alnum
	Any
)

var charsetPatterns = map[Charset]*regexp.Regexp{
	AlnumHyphen:      regexp.MustCompile(`^[a-zA-Z0-9-]+$`),
	LowerAlnum:       regexp.MustCompile(`^[a-z0-9]+$`),
	LowerAlnumHyphen: regexp.MustCompile(`^[a-z0-9-]+$`),
	Alnum:            regexp.MustCompile(`^[a-zA-Z0-9]+$`),
	Any:              regexp.MustCompile(`^[a-zA-Z0-9-._()]+$`),
}

// Rule is the naming constraint of one resource kind
type Rule struct {
	Prefix    string
	MinLength int
	MaxLength int
	Charset   Charset
	// Suffixed kinds are named prefix + solution suffix.
	Suffixed bool
}

// Rules holds the naming constraints per kind
var Rules = map[model.ResourceKind]Rule{
	model.KindManagedIdentity:    {Prefix: "id-", MinLength: 3, MaxLength: 128, Charset: AlnumHyphen, Suffixed: true},
	model.KindKeyVault:           {Prefix: "kv-", MinLength: 3, MaxLength: 24, Charset: AlnumHyphen, Suffixed: true},
	model.KindStorageAccount:     {Prefix: "st", MinLength: 3, MaxLength: 24, Charset: LowerAlnum, Suffixed: true},
	model.KindSearchService:      {Prefix: "srch-", MinLength: 2, MaxLength: 60, Charset: LowerAlnumHyphen, Suffixed: true},
	model.KindCosmosAccount:      {Prefix: "cosno-", MinLength: 3, MaxLength: 44, Charset: LowerAlnumHyphen, Suffixed: true},
	model.KindAIServices:         {Prefix: "aif-", MinLength: 2, MaxLength: 64, Charset: AlnumHyphen, Suffixed: true},
	model.KindAIProject:          {Prefix: "proj-", MinLength: 2, MaxLength: 64, Charset: AlnumHyphen, Suffixed: true},
	model.KindLogAnalytics:       {Prefix: "log-", MinLength: 4, MaxLength: 63, Charset: AlnumHyphen, Suffixed: true},
	model.KindAppInsights:        {Prefix: "appi-", MinLength: 1, MaxLength: 260, Charset: Any, Suffixed: true},
	model.KindContainerRegistry:  {Prefix: "cr", MinLength: 5, MaxLength: 50, Charset: Alnum, Suffixed: true},
	model.KindAppServicePlan:     {Prefix: "asp-", MinLength: 1, MaxLength: 40, Charset: AlnumHyphen, Suffixed: true},
	model.KindWebApp:             {Prefix: "app-", MinLength: 2, MaxLength: 60, Charset: AlnumHyphen, Suffixed: true},
	model.KindContainerInstance:  {Prefix: "ci-", MinLength: 1, MaxLength: 63, Charset: LowerAlnumHyphen, Suffixed: true},
	model.KindVirtualNetwork:     {Prefix: "vnet-", MinLength: 2, MaxLength: 64, Charset: Any, Suffixed: true},
	model.KindPrivateDNSZoneLink: {Prefix: "link-", MinLength: 1, MaxLength: 80, Charset: Any, Suffixed: true},
	model.KindTelemetry:          {Prefix: "46d3xbcp.ptn.sa-contentgen.", MinLength: 1, MaxLength: 64, Charset: Any, Suffixed: true},
	model.KindPrivateEndpoint:    {Prefix: "pep-", MinLength: 2, MaxLength: 64, Charset: Any},
	model.KindAIModelDeployment:  {MinLength: 2, MaxLength: 64, Charset: Any},
	model.KindBlobContainer:      {MinLength: 3, MaxLength: 63, Charset: LowerAlnumHyphen},
	model.KindCosmosDatabase:     {MinLength: 1, MaxLength: 255, Charset: Any},
	model.KindCosmosContainer:    {MinLength: 1, MaxLength: 255, Charset: Any},
	model.KindPrivateDNSZone:     {MinLength: 1, MaxLength: 63 * 4, Charset: Any},
	model.KindDNSZoneGroup:       {MinLength: 1, MaxLength: 80, Charset: Any},
	model.KindDiagnosticSettings: {MinLength: 1, MaxLength: 260, Charset: Any},
}

// Budget is the longest solution suffix every suffixed kind can hold.
func Budget() int {
	budget := -1
	for _, rule := range Rules {
		if !rule.Suffixed {
			continue
		}
		room := rule.MaxLength - len(rule.Prefix)
		if budget < 0 || room < budget {
			budget = room
		}
	}
	return budget
}

// UniqueToken hashes the deployment scope into a short lower-case token.
// Equal inputs always give equal tokens.
func UniqueToken(subscriptionID, resourceGroup, solutionName string) string {
	key := strings.ToLower(strings.Join([]string{subscriptionID, resourceGroup, solutionName}, "|"))
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], xxhash.Sum64String(key))
	return tokenEncoding.EncodeToString(buf[:])[:UniqueLength]
}

// Sanitize lower-cases s and strips everything that is not a letter or digit
func Sanitize(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// SolutionSuffix derives the suffix shared by every derived name. The
// solution name part is shortened when needed; the unique token never is.
func SolutionSuffix(subscriptionID, resourceGroup, solutionName string) (string, error) {
	token := UniqueToken(subscriptionID, resourceGroup, solutionName)
	base := Sanitize(solutionName)

	room := Budget() - len(token)
	if room < 0 {
		return "", model.Errorf(model.NameDerivationOverflow, "solutionName",
			"no room for the unique token within the %d-character budget", Budget())
	}
	if len(base) > room {
		base = base[:room]
	}
	return base + token, nil
}

// Derive builds the name of a suffixed kind and checks it against the kind's rule
func Derive(kind model.ResourceKind, suffix string) (string, error) {
	rule, ok := Rules[kind]
	if !ok || !rule.Suffixed {
		return "", fmt.Errorf("kind %s has no derived name", kind)
	}
	name := rule.Prefix + suffix
	if err := Check(kind, name); err != nil {
		return "", err
	}
	return name, nil
}

// Check validates an explicit name against the kind's rule
func Check(kind model.ResourceKind, name string) error {
	rule, ok := Rules[kind]
	if !ok {
		return nil
	}
	if len(name) > rule.MaxLength {
		return model.Errorf(model.NameDerivationOverflow, string(kind),
			"name %q is %d characters, the limit is %d", name, len(name), rule.MaxLength)
	}
	if len(name) < rule.MinLength {
		return model.Errorf(model.NameDerivationOverflow, string(kind),
			"name %q is shorter than %d characters", name, rule.MinLength)
	}
	if !charsetPatterns[rule.Charset].MatchString(name) {
		return model.Errorf(model.NameDerivationOverflow, string(kind),
			"name %q contains characters not allowed for %s", name, kind)
	}
	return nil
}

// Names holds every derived name of one deployment
type Names map[model.ResourceKind]string

// DeriveAll derives the names of every suffixed kind
func DeriveAll(suffix string) (Names, error) {
	names := make(Names)
	for _, kind := range model.Kinds() {
		rule, ok := Rules[kind]
		if !ok || !rule.Suffixed {
			continue
		}
		name, err := Derive(kind, suffix)
		if err != nil {
			return nil, err
		}
		names[kind] = name
	}
	return names, nil
}
