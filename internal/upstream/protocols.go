package upstream

import (
	"context"
	"encoding/base64"
	"fmt"
)

// ProtocolsClient wraps the single-file protocol sub-resource. There is one
// attachment per (event base, region) pair; upload always replaces and the
// server keeps no versions, so concurrent uploads resolve last-write-wins.
type ProtocolsClient struct {
	gw *Client
}

func NewProtocolsClient(gw *Client) *ProtocolsClient {
	return &ProtocolsClient{gw: gw}
}

func protocolPath(eventBaseID, regionID int64) string {
	return fmt.Sprintf("/event-protocols/%d/region/%d", eventBaseID, regionID)
}

// Fetch returns the decoded file content. The API ships it as a base64
// string, not a binary body.
func (c *ProtocolsClient) Fetch(ctx context.Context, eventBaseID, regionID int64) ([]byte, error) {
	encoded, err := c.gw.getText(ctx, protocolPath(eventBaseID, regionID))
	if err != nil {
		return nil, err
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode protocol payload: %w", err)
	}
	return decoded, nil
}

func (c *ProtocolsClient) Upload(ctx context.Context, eventBaseID, regionID int64, filename string, content []byte) error {
	return c.gw.postFile(ctx, protocolPath(eventBaseID, regionID)+"/upload", filename, content)
}

func (c *ProtocolsClient) Delete(ctx context.Context, eventBaseID, regionID int64) error {
	return c.gw.delete(ctx, protocolPath(eventBaseID, regionID))
}
