package forecast

import (
	"fmt"
	"os"

	"github.com/etnz/forecast/date"
	"github.com/goccy/go-yaml"
)

// Config is the full YAML description of a forecasting run. All entity
// records are immutable once loaded; the simulation builds its mutable state
// from them.
type Config struct {
	// StartDate pins the simulated clock for reproducible runs. Unset means
	// the run starts today.
	StartDate *date.Date `yaml:"start_date"`
	DOB       date.Date  `yaml:"dob"`
	// Married is either a boolean or the year the person (will be) married.
	Married any `yaml:"married"`

	// PaymentOrder entries are [target, threshold] pairs: an account name
	// with a balance goal (null for unconditional), or the literal "debt"
	// with a minimum interest rate.
	PaymentOrder [][]any `yaml:"payment_order"`

	Accounts []AccountConfig `yaml:"accounts"`
	Bills    []BillConfig    `yaml:"bills"`
	Debts    []DebtConfig    `yaml:"debts"`
	Income   []IncomeConfig  `yaml:"income"`
	Assets   []AssetConfig   `yaml:"assets"`

	Output OutputConfig `yaml:"output"`
}

// AccountConfig describes one account.
type AccountConfig struct {
	Name                string      `yaml:"name"`
	Type                AccountType `yaml:"type"`
	Balance             float64     `yaml:"balance"`
	InterestRate        float64     `yaml:"interest_rate"`
	InterestPeriodType  date.Unit   `yaml:"interest_period_type"`
	InterestPeriodValue int         `yaml:"interest_period_value"`
	LastInterestDate    date.Date   `yaml:"last_interest_date"`
	PaysCapitalGainsTax bool        `yaml:"pays_capital_gains_tax"`
	PaysIncomeTax       bool        `yaml:"pays_income_tax"`
}

// BillConfig describes one recurring bill.
type BillConfig struct {
	Name                       string     `yaml:"name"`
	Charge                     float64    `yaml:"charge"`
	ChargePeriodType           date.Unit  `yaml:"charge_period_type"`
	ChargePeriodValue          int        `yaml:"charge_period_value"`
	AnnualInflationFlat        float64    `yaml:"annual_inflation_flat"`
	AnnualInflationPercentage  float64    `yaml:"annual_inflation_percentage"`
	AnnualInflationPeriodType  date.Unit  `yaml:"annual_inflation_period_type"`
	AnnualInflationPeriodValue int        `yaml:"annual_inflation_period_value"`
	StartDate                  date.Date  `yaml:"start_date"`
	EndDate                    *date.Date `yaml:"end_date"`
}

// DebtConfig describes one debt, optionally with its collateral asset inline.
type DebtConfig struct {
	Name                string       `yaml:"name"`
	Principal           float64      `yaml:"principal"`
	Balance             float64      `yaml:"balance"`
	StartDate           date.Date    `yaml:"start_date"`
	EndDate             date.Date    `yaml:"end_date"`
	InterestRate        float64      `yaml:"interest_rate"`
	InterestPeriodType  date.Unit    `yaml:"interest_period_type"`
	InterestPeriodValue int          `yaml:"interest_period_value"`
	ChargePeriodType    date.Unit    `yaml:"charge_period_type"`
	ChargePeriodValue   int          `yaml:"charge_period_value"`
	Asset               *AssetConfig `yaml:"asset"`
}

// IncomeConfig describes one income stream.
type IncomeConfig struct {
	Name                           string    `yaml:"name"`
	Gross                          float64   `yaml:"gross"`
	HealthInsurancePremium         float64   `yaml:"health_insurance_premium"`
	AnnualInflationFlat            float64   `yaml:"annual_inflation_flat"`
	AnnualInflationPercentage      float64   `yaml:"annual_inflation_percentage"`
	AnnualInflationPeriodType      date.Unit `yaml:"annual_inflation_period_type"`
	AnnualInflationPeriodValue     int       `yaml:"annual_inflation_period_value"`
	FourOhOneK                     float64   `yaml:"401k"`
	FourOhOneKEmployerContribution float64   `yaml:"401k_employer_contribution"`
	HSA                            float64   `yaml:"hsa"`
	HSAEmployerContribution        float64   `yaml:"hsa_employer_contribution"`
	StateTaxPercentage             float64   `yaml:"state_tax_percentage"`
	CityTaxPercentage              float64   `yaml:"city_tax_percentage"`
	PaymentPeriodType              date.Unit `yaml:"payment_period_type"`
	PaymentPeriodValue             int       `yaml:"payment_period_value"`
	StartDate                      date.Date `yaml:"start_date"`
	EndDate                        date.Date `yaml:"end_date"`
}

// AssetConfig describes one asset, standalone or collateral.
type AssetConfig struct {
	Name                    string     `yaml:"name"`
	Type                    AssetType  `yaml:"type"`
	Value                   float64    `yaml:"value"`
	AppreciationRate        float64    `yaml:"appreciation_rate"`
	AppreciationPeriodType  date.Unit  `yaml:"appreciation_period_type"`
	AppreciationPeriodValue int        `yaml:"appreciation_period_value"`
	PaysCapitalGainsTax     bool       `yaml:"pays_capital_gains_tax"`
	SellDate                *date.Date `yaml:"sell_date"`
}

// OutputConfig describes when reports should be printed.
type OutputConfig struct {
	Cadence   date.Period `yaml:"cadence"`
	StartDate *date.Date  `yaml:"start_date"`
	EndDate   date.Date   `yaml:"end_date"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(raw)
}

// ParseConfig parses YAML config bytes.
func ParseConfig(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the config for the errors the engine treats as fatal:
// missing required fields, unknown names in the payment order, negative
// amounts, and contributions with no account to land in.
func (cfg *Config) Validate() error {
	if cfg.DOB == (date.Date{}) {
		return fmt.Errorf("dob is required")
	}
	if cfg.Output.EndDate == (date.Date{}) {
		return fmt.Errorf("output.end_date is required")
	}
	if _, _, _, err := parseMarried(cfg.Married); err != nil {
		return err
	}

	names := make(map[string]bool)
	hasType := make(map[AccountType]bool)
	for _, a := range cfg.Accounts {
		if a.Name == "" {
			return fmt.Errorf("account with empty name")
		}
		if names[a.Name] {
			return fmt.Errorf("duplicate account name %q", a.Name)
		}
		names[a.Name] = true
		hasType[a.Type] = true
		if a.Balance < 0 {
			return fmt.Errorf("account %q: negative balance", a.Name)
		}
	}
	if !hasType[Cash] {
		return fmt.Errorf("at least one cash account is required")
	}

	rules, err := cfg.paymentRules()
	if err != nil {
		return err
	}
	for _, r := range rules {
		if !r.IsDebt() && !names[r.Target] {
			return fmt.Errorf("payment order names unknown account %q", r.Target)
		}
	}

	for _, b := range cfg.Bills {
		if b.Charge < 0 {
			return fmt.Errorf("bill %q: negative charge", b.Name)
		}
		if b.StartDate == (date.Date{}) {
			return fmt.Errorf("bill %q: start_date is required", b.Name)
		}
	}
	for _, d := range cfg.Debts {
		if d.Balance < 0 || d.Principal < 0 {
			return fmt.Errorf("debt %q: negative amount", d.Name)
		}
		if d.StartDate == (date.Date{}) || d.EndDate == (date.Date{}) {
			return fmt.Errorf("debt %q: start_date and end_date are required", d.Name)
		}
		if d.EndDate.Before(d.StartDate) {
			return fmt.Errorf("debt %q: end date before start date", d.Name)
		}
	}
	for _, in := range cfg.Income {
		if in.Gross < 0 {
			return fmt.Errorf("income %q: negative gross", in.Name)
		}
		if in.StartDate == (date.Date{}) || in.EndDate == (date.Date{}) {
			return fmt.Errorf("income %q: start_date and end_date are required", in.Name)
		}
		// Contributions with no matching account would leak money out of
		// circulation: the employer is debited but nothing is credited.
		if (in.FourOhOneK > 0 || in.FourOhOneKEmployerContribution > 0) && !hasType[FourOhOneK] {
			return fmt.Errorf("income %q: 401k contributions require a fourk account", in.Name)
		}
		if (in.HSA > 0 || in.HSAEmployerContribution > 0) && !hasType[HSA] {
			return fmt.Errorf("income %q: hsa contributions require an hsa account", in.Name)
		}
	}
	for _, a := range cfg.Assets {
		if a.Value < 0 {
			return fmt.Errorf("asset %q: negative value", a.Name)
		}
	}
	return nil
}

// maritalStatus resolves the married field against the starting date. The
// field must have been validated first.
func (cfg *Config) maritalStatus(today date.Date) (married bool, yearMarried int) {
	isBool, b, year, _ := parseMarried(cfg.Married)
	if isBool {
		return b, today.Year()
	}
	return today.Year() >= year, year
}

// parseMarried decodes the married field: absent or a boolean, or the year the
// person gets married.
func parseMarried(v any) (isBool bool, b bool, year int, err error) {
	switch m := v.(type) {
	case nil:
		return true, false, 0, nil
	case bool:
		return true, m, 0, nil
	case int:
		return false, false, m, nil
	case int64:
		return false, false, int(m), nil
	case uint64:
		return false, false, int(m), nil
	case float64:
		return false, false, int(m), nil
	default:
		return false, false, 0, fmt.Errorf("married: want a boolean or a year, got %T", v)
	}
}

// paymentRules converts the raw payment-order pairs into rules.
func (cfg *Config) paymentRules() ([]PaymentRule, error) {
	rules := make([]PaymentRule, 0, len(cfg.PaymentOrder))
	for i, entry := range cfg.PaymentOrder {
		if len(entry) != 2 {
			return nil, fmt.Errorf("payment order entry %d: want [target, threshold] pair", i)
		}
		target, ok := entry[0].(string)
		if !ok {
			return nil, fmt.Errorf("payment order entry %d: target must be a string", i)
		}
		rule := PaymentRule{Target: target}
		if entry[1] != nil {
			value, err := asFloat(entry[1])
			if err != nil {
				return nil, fmt.Errorf("payment order entry %d: %w", i, err)
			}
			if rule.IsDebt() {
				rule.MinRate = value
			} else {
				rule.Threshold = M(value)
				rule.HasThreshold = true
			}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("want a number, got %T", v)
	}
}
