package enum

import (
	"encoding/json"
	"fmt"
)

// CustomerType distinguishes people from companies.
type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "individual"
	CustomerTypeBusiness   CustomerType = "business"
)

func (t CustomerType) IsValid() bool {
	return t == CustomerTypeIndividual || t == CustomerTypeBusiness
}

func (t *CustomerType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := CustomerType(s)
	if s != "" && !v.IsValid() {
		return fmt.Errorf("invalid customer type %q", s)
	}
	*t = v
	return nil
}
