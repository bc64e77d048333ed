package qdrant

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
)

// ScrollPageSize is how many points each scroll request fetches.
const ScrollPageSize = 100

func enablePayload() *pb.WithPayloadSelector {
	return &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}}
}

func withVectors(enable bool) *pb.WithVectorsSelector {
	return &pb.WithVectorsSelector{SelectorOptions: &pb.WithVectorsSelector_Enable{Enable: enable}}
}

func idsSelector(ids []*pb.PointId) *pb.PointsSelector {
	return &pb.PointsSelector{
		PointsSelectorOneOf: &pb.PointsSelector_Points{
			Points: &pb.PointsIdsList{Ids: ids},
		},
	}
}

func (c *Client) fromRetrieved(p *pb.RetrievedPoint) *Point {
	point := &Point{
		ID:      pointIDString(p.GetId()),
		Payload: fromQdrantPayload(p.GetPayload()),
	}
	if v := p.GetVectors().GetVector(); v != nil {
		point.Vector = v.GetData()
	}
	return point
}

// Retrieve fetches points by ID. IDs that do not exist are returned in
// missing rather than failing the whole call.
func (c *Client) Retrieve(ctx context.Context, collection string, ids []string, includeVectors bool) (points []*Point, missing []string, err error) {
	pointIDs, err := parsePointIDs(ids)
	if err != nil {
		return nil, nil, err
	}

	authCtx, cancel := c.ctxWithAuth(ctx)
	defer cancel()

	resp, err := c.points.Get(authCtx, &pb.GetPoints{
		CollectionName: collection,
		Ids:            pointIDs,
		WithPayload:    enablePayload(),
		WithVectors:    withVectors(includeVectors),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve points: %w", err)
	}

	found := make(map[string]struct{}, len(resp.Result))
	for _, p := range resp.Result {
		point := c.fromRetrieved(p)
		found[point.ID] = struct{}{}
		points = append(points, point)
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return points, missing, nil
}

// Scroll pages through all points matching filter. A limit of 0 means no
// limit; otherwise at most limit points are returned.
func (c *Client) Scroll(ctx context.Context, collection string, filter *pb.Filter, includeVectors bool, limit int) ([]*Point, error) {
	var points []*Point
	var offset *pb.PointId
	pageSize := uint32(ScrollPageSize)

	for {
		authCtx, cancel := c.ctxWithAuth(ctx)
		resp, err := c.points.Scroll(authCtx, &pb.ScrollPoints{
			CollectionName: collection,
			Filter:         filter,
			Limit:          &pageSize,
			Offset:         offset,
			WithPayload:    enablePayload(),
			WithVectors:    withVectors(includeVectors),
		})
		cancel()
		if err != nil {
			return nil, fmt.Errorf("failed to scroll points: %w", err)
		}

		for _, p := range resp.Result {
			points = append(points, c.fromRetrieved(p))
			if limit > 0 && len(points) >= limit {
				return points, nil
			}
		}

		offset = resp.GetNextPageOffset()
		if offset == nil || len(resp.Result) == 0 {
			return points, nil
		}
	}
}

func setPayloadRequest(collection string, ids []*pb.PointId, payload map[string]any, key string) *pb.SetPayloadPoints {
	req := &pb.SetPayloadPoints{
		CollectionName: collection,
		Payload:        toQdrantPayload(payload),
		PointsSelector: idsSelector(ids),
	}
	if key != "" {
		req.Key = &key
	}
	return req
}

// SetPayload merges payload into all selected points with one call. A
// non-empty key is a dotted path naming where inside the payload the fields
// land; empty means the payload root.
func (c *Client) SetPayload(ctx context.Context, collection string, ids []string, payload map[string]any, key string) error {
	pointIDs, err := parsePointIDs(ids)
	if err != nil {
		return err
	}

	authCtx, cancel := c.ctxWithAuth(ctx)
	defer cancel()

	if _, err := c.points.SetPayload(authCtx, setPayloadRequest(collection, pointIDs, payload, key)); err != nil {
		return fmt.Errorf("failed to set payload on %d points: %w", len(ids), err)
	}
	return nil
}

// DeletePayload removes the named keys, dotted paths included, from all
// selected points with one call.
func (c *Client) DeletePayload(ctx context.Context, collection string, ids []string, keys []string) error {
	pointIDs, err := parsePointIDs(ids)
	if err != nil {
		return err
	}

	authCtx, cancel := c.ctxWithAuth(ctx)
	defer cancel()

	_, err = c.points.DeletePayload(authCtx, &pb.DeletePayloadPoints{
		CollectionName: collection,
		Keys:           keys,
		PointsSelector: idsSelector(pointIDs),
	})
	if err != nil {
		return fmt.Errorf("failed to delete payload keys from %d points: %w", len(ids), err)
	}
	return nil
}

// OverwritePayload replaces the full payload of a single point, leaving its
// vector untouched.
func (c *Client) OverwritePayload(ctx context.Context, collection, id string, newPayload map[string]any) error {
	pointID, err := parsePointID(id)
	if err != nil {
		return err
	}

	authCtx, cancel := c.ctxWithAuth(ctx)
	defer cancel()

	_, err = c.points.OverwritePayload(authCtx, &pb.SetPayloadPoints{
		CollectionName: collection,
		Payload:        toQdrantPayload(newPayload),
		PointsSelector: idsSelector([]*pb.PointId{pointID}),
	})
	if err != nil {
		return fmt.Errorf("failed to overwrite payload for point %s: %w", id, err)
	}
	return nil
}

// DeletePoints removes points by ID.
func (c *Client) DeletePoints(ctx context.Context, collection string, ids []string) error {
	pointIDs, err := parsePointIDs(ids)
	if err != nil {
		return err
	}

	authCtx, cancel := c.ctxWithAuth(ctx)
	defer cancel()

	_, err = c.points.Delete(authCtx, &pb.DeletePoints{
		CollectionName: collection,
		Points:         idsSelector(pointIDs),
	})
	if err != nil {
		return fmt.Errorf("failed to delete points: %w", err)
	}
	return nil
}
