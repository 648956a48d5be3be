package rpc

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/roulette/internal/roulette"
	"github.com/xtding233/roulette/internal/sharecode"
)

var errBadMessage = errors.New("malformed message")

func stringList(ss []string) *structpb.Value {
	vals := make([]*structpb.Value, len(ss))
	for i, s := range ss {
		vals[i] = structpb.NewStringValue(s)
	}
	return structpb.NewListValue(&structpb.ListValue{Values: vals})
}

func itemList(items []roulette.Item) *structpb.Value {
	vals := make([]*structpb.Value, len(items))
	for i, it := range items {
		vals[i] = structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"name":   structpb.NewStringValue(it.Name),
			"weight": structpb.NewNumberValue(it.Weight),
		}})
	}
	return structpb.NewListValue(&structpb.ListValue{Values: vals})
}

func spinMessage(results []string, draws int) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"results": stringList(results),
		"draws":   structpb.NewNumberValue(float64(draws)),
	}}
}

func stateMessage(st sharecode.State) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"items": itemList(st.Items),
		"draws": structpb.NewNumberValue(float64(st.DrawCount)),
	}}
}

func restoreMessage(st sharecode.State) *structpb.Struct {
	msg := stateMessage(st)
	msg.Fields["empty"] = structpb.NewBoolValue(st.Empty())
	return msg
}

// parseState reads {items:[{name,weight}], draws}. Missing or non-numeric
// weights and draws fall back to 1; a wrongly shaped item list is an error.
func parseState(msg *structpb.Struct) (sharecode.State, error) {
	st := sharecode.State{DrawCount: 1}
	fields := msg.GetFields()

	if v, ok := fields["draws"]; ok {
		st.DrawCount = numberToInt(v)
	}

	v, ok := fields["items"]
	if !ok {
		return st, nil
	}
	list := v.GetListValue()
	if list == nil {
		return sharecode.State{}, fmt.Errorf("%w: items must be a list", errBadMessage)
	}
	st.Items = make([]roulette.Item, 0, len(list.GetValues()))
	for i, iv := range list.GetValues() {
		obj := iv.GetStructValue()
		if obj == nil {
			return sharecode.State{}, fmt.Errorf("%w: items[%d] must be an object", errBadMessage, i)
		}
		item := roulette.Item{Name: obj.GetFields()["name"].GetStringValue(), Weight: 1}
		if w, ok := obj.GetFields()["weight"]; ok {
			item.Weight = numberOrText(w)
		}
		st.Items = append(st.Items, item)
	}
	return st, nil
}

func numberOrText(v *structpb.Value) float64 {
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		if math.IsNaN(k.NumberValue) || math.IsInf(k.NumberValue, 0) {
			return 1
		}
		return k.NumberValue
	case *structpb.Value_StringValue:
		return roulette.ParseWeight(k.StringValue)
	default:
		return 1
	}
}

func numberToInt(v *structpb.Value) int {
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		f := k.NumberValue
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 1
		}
		if f >= math.MaxInt32 {
			return math.MaxInt32
		}
		if f <= math.MinInt32 {
			return math.MinInt32
		}
		return int(f)
	case *structpb.Value_StringValue:
		return roulette.ParseDrawCount(k.StringValue)
	default:
		return 1
	}
}

func parseSpin(msg *structpb.Struct) ([]string, int, error) {
	list := msg.GetFields()["results"].GetListValue()
	if list == nil {
		return nil, 0, fmt.Errorf("%w: results must be a list", errBadMessage)
	}
	results := make([]string, len(list.GetValues()))
	for i, v := range list.GetValues() {
		results[i] = v.GetStringValue()
	}
	return results, numberToInt(msg.GetFields()["draws"]), nil
}
