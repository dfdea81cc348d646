package handlers

import (
	"context"
	"fmt"

	"github.com/hzargar/rhino-gh-bridge/internal/registry"
	"github.com/hzargar/rhino-gh-bridge/internal/truss"
)

func (s *Set) registerTruss(r *registry.Registry) {
	r.RegisterHandler(registry.HandlerDescriptor{
		Endpoint:    "/generate_truss",
		Description: "Generate a parametric roof truss structure",
		Params: []registry.Param{
			{Name: "upper_line_start_x", Type: "number", Description: "Upper chord start X", Default: 0.0},
			{Name: "upper_line_start_y", Type: "number", Description: "Upper chord start Y", Default: 0.0},
			{Name: "upper_line_start_z", Type: "number", Description: "Upper chord start Z", Default: 0.0},
			{Name: "upper_line_end_x", Type: "number", Description: "Upper chord end X", Default: 10.0},
			{Name: "upper_line_end_y", Type: "number", Description: "Upper chord end Y", Default: 0.0},
			{Name: "upper_line_end_z", Type: "number", Description: "Upper chord end Z", Default: 0.0},
			{Name: "truss_depth", Type: "number", Description: "Truss depth", Default: 2.0},
			{Name: "num_divisions", Type: "integer", Description: "Number of bays along the chord", Default: 4},
			{Name: "truss_type", Type: "string", Description: "Topology: Pratt, Warren, Vierendeel, Howe, Brown, Onedir", Default: "Pratt"},
			{Name: "clear_previous", Type: "boolean", Description: "Delete previously generated truss members first", Default: true},
		},
		Handle: s.handleGenerateTruss,
	})
}

func (s *Set) handleGenerateTruss(ctx context.Context, body map[string]any) (map[string]any, error) {
	spec := truss.Spec{
		Start: truss.Point{
			getFloat(body, "upper_line_start_x", 0),
			getFloat(body, "upper_line_start_y", 0),
			getFloat(body, "upper_line_start_z", 0),
		},
		End: truss.Point{
			getFloat(body, "upper_line_end_x", 10),
			getFloat(body, "upper_line_end_y", 0),
			getFloat(body, "upper_line_end_z", 0),
		},
		Depth:     getFloat(body, "truss_depth", 2),
		Divisions: getInt(body, "num_divisions", 4),
	}
	typeName := getString(body, "truss_type", "Pratt")
	clearPrevious := getBool(body, "clear_previous", true)

	topology, known := truss.ParseTopology(typeName)
	if !known {
		s.logger.Warn().Str("truss_type", typeName).Msg("unknown truss type, defaulting to Pratt")
	}
	spec.Topology = topology

	doc, unavailable := s.document(map[string]any{"truss_members": []any{}})
	if unavailable != nil {
		return unavailable, nil
	}

	members, err := truss.Generate(spec)
	if err != nil {
		return failure(err.Error(), map[string]any{"truss_members": []any{}}), nil
	}

	cleared := 0
	if clearPrevious {
		previous := doc.ObjectsByTag("object_type", truss.Tag)
		ids := make([]string, len(previous))
		for i, obj := range previous {
			ids[i] = obj.ID
		}
		cleared = doc.DeleteObjects(ids)
		if cleared > 0 {
			s.logger.Debug().Int("cleared", cleared).Msg("removed previous truss members")
		}
	}

	baked := make([]map[string]any, 0, len(members))
	for _, m := range members {
		id, err := doc.AddLine([3]float64(m.Start), [3]float64(m.End), map[string]string{
			"object_type": truss.Tag,
			"member_type": string(m.Kind),
		})
		if err != nil {
			return failure("failed to create truss in Rhino", map[string]any{"truss_members": []any{}}), nil
		}
		baked = append(baked, map[string]any{
			"id":    id,
			"type":  string(m.Kind),
			"start": m.Start,
			"end":   m.End,
		})
	}

	return map[string]any{
		"success":        true,
		"truss_members":  baked,
		"num_members":    len(baked),
		"cleared":        cleared,
		"truss_depth":    spec.Depth,
		"num_divisions":  spec.Divisions,
		"truss_type":     string(spec.Topology),
		"message":        fmt.Sprintf("%s truss created successfully with %d members", spec.Topology, len(baked)),
	}, nil
}
