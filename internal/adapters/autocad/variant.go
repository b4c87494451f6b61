package autocad

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"titleblock/internal/domain"
)

func getDispatch(d *ole.IDispatch, name string) (*ole.IDispatch, error) {
	v, err := oleutil.GetProperty(d, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return v.ToIDispatch(), nil
}

func callDispatch(d *ole.IDispatch, method string, args ...interface{}) (*ole.IDispatch, error) {
	v, err := oleutil.CallMethod(d, method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}
	return v.ToIDispatch(), nil
}

func stringProperty(d *ole.IDispatch, name string) (string, error) {
	v, err := oleutil.GetProperty(d, name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	defer v.Clear()
	return v.ToString(), nil
}

func intProperty(d *ole.IDispatch, name string) (int, error) {
	v, err := oleutil.GetProperty(d, name)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", name, err)
	}
	defer v.Clear()
	return toInt(v.Value())
}

func toInt(value interface{}) (int, error) {
	switch n := value.(type) {
	case int:
		return n, nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	default:
		return 0, fmt.Errorf("autocad: expected an integer, got %T", value)
	}
}

// dispatchArray unpacks a SAFEARRAY of objects
func dispatchArray(v *ole.VARIANT) ([]*ole.IDispatch, error) {
	arr := v.ToArray()
	if arr == nil {
		return nil, nil
	}
	var out []*ole.IDispatch
	for _, item := range arr.ToValueArray() {
		switch d := item.(type) {
		case *ole.IDispatch:
			out = append(out, d)
		case *ole.IUnknown:
			disp, err := d.QueryInterface(ole.IID_IDispatch)
			if err != nil {
				return nil, err
			}
			out = append(out, disp)
		case nil:
		default:
			return nil, fmt.Errorf("autocad: expected an object, got %T", item)
		}
	}
	return out, nil
}

// floatArray unpacks a SAFEARRAY of doubles
func floatArray(v *ole.VARIANT) ([]float64, error) {
	arr := v.ToArray()
	if arr == nil {
		return nil, nil
	}
	var out []float64
	for _, item := range arr.ToValueArray() {
		switch f := item.(type) {
		case float64:
			out = append(out, f)
		case float32:
			out = append(out, float64(f))
		default:
			return nil, fmt.Errorf("autocad: expected a number, got %T", item)
		}
	}
	return out, nil
}

// toPoint reads up to three coordinates; missing ones are zero
func toPoint(coords []float64) domain.Point {
	var p domain.Point
	dst := []*float64{&p.X, &p.Y, &p.Z}
	for i := 0; i < len(coords) && i < len(dst); i++ {
		*dst[i] = coords[i]
	}
	return p
}
