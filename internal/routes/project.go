// SPDX-License-Identifier: AGPL-3.0-or-later

package routes

import (
	"strings"
)

// Project maps a source route to its display record.
func Project(rt Route, resolver *Resolver) (Record, error) {
	middleware, err := resolver.Resolve(rt)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Domain:     rt.Domain,
		Method:     strings.Join(rt.Methods, "|"),
		URI:        rt.URI,
		Name:       rt.Name,
		Action:     rt.Action,
		Middleware: strings.Join(middleware, ","),
	}, nil
}

// ProjectAll projects every route in order. The first resolution failure
// aborts the whole projection.
func ProjectAll(rts []Route, resolver *Resolver) ([]Record, error) {
	records := make([]Record, 0, len(rts))
	for _, rt := range rts {
		rec, err := Project(rt, resolver)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
