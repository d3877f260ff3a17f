package compare

import (
	"encoding/json"

	"github.com/rgehrsitz/fmgo/internal/domain"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty        bool // indent the output
	IncludeYearly bool // attach each scenario's yearly ledger
}

type jsonComparison struct {
	*ComparisonSet
	Yearly map[string][]domain.YearlyRecord `json:"yearly,omitempty"`
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc := jsonComparison{ComparisonSet: compSet}
	if jf.IncludeYearly {
		doc.Yearly = make(map[string][]domain.YearlyRecord)
		for _, r := range compSet.All() {
			if r.Result != nil {
				doc.Yearly[r.ScenarioName] = r.Result.YearlyLedger
			}
		}
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
