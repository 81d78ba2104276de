package response

import (
	"github.com/cockroachdb/errors"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

// money and percentages go out as fixed two-decimal strings
var copyOption = copier.Option{
	DeepCopy: true,
	Converters: []copier.TypeConverter{
		{
			SrcType: decimal.Decimal{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				d, ok := src.(decimal.Decimal)
				if !ok {
					return nil, errors.Newf("unexpected source type %T", src)
				}
				return d.StringFixed(2), nil
			},
		},
		{
			SrcType: (*decimal.Decimal)(nil),
			DstType: (*string)(nil),
			Fn: func(src any) (any, error) {
				d, ok := src.(*decimal.Decimal)
				if !ok {
					return nil, errors.Newf("unexpected source type %T", src)
				}
				if d == nil {
					return (*string)(nil), nil
				}
				s := d.StringFixed(2)
				return &s, nil
			},
		},
	},
}

func mapInto(dst, src any) error {
	if src == nil {
		return errors.New("map response: nil source")
	}
	if err := copier.CopyWithOption(dst, src, copyOption); err != nil {
		return errors.Wrap(err, "map response")
	}
	return nil
}
