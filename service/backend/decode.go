package backend

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"

	catalogEntity "meezy.GO/model/entity/catalog"
	customerEntity "meezy.GO/model/entity/customer"
)

// numberToStringHook converts numeric JSON values to string fields. Barcodes
// arrive sometimes as JSON numbers and must compare as digit strings.
func numberToStringHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.String {
			return data, nil
		}
		switch f.Kind() {
		case reflect.Float32, reflect.Float64:
			// No %v here: a 13-digit barcode must not come out in
			// scientific notation.
			return strconv.FormatFloat(reflect.ValueOf(data).Float(), 'f', -1, 64), nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return fmt.Sprint(data), nil
		}
		return data, nil
	}
}

// decodeLoose decodes a loosely typed JSON value into a typed struct.
func decodeLoose(raw interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       numberToStringHook(),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func decodeItems(list []interface{}) ([]catalogEntity.Item, error) {
	items := make([]catalogEntity.Item, 0, len(list))
	for _, entry := range list {
		if entry == nil {
			continue
		}
		var item catalogEntity.Item
		if err := decodeLoose(entry, &item); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeCustomers(list []interface{}) ([]customerEntity.Customer, error) {
	customers := make([]customerEntity.Customer, 0, len(list))
	for _, entry := range list {
		if entry == nil {
			continue
		}
		var cust customerEntity.Customer
		if err := decodeLoose(entry, &cust); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
		}
		customers = append(customers, cust)
	}
	return customers, nil
}
