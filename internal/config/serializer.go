package config

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Serialize renders a Config back to policy HCL. Used by the importer when
// converting foreign relay inventories.
func Serialize(cfg *Config) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	if cfg.Client != "" {
		body.SetAttributeValue("client", cty.StringVal(cfg.Client))
		body.AppendNewline()
	}

	for i, r := range cfg.Relays {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("relay", []string{r.Name})
		rb := block.Body()
		if r.Kind != "" {
			rb.SetAttributeValue("kind", cty.StringVal(r.Kind))
		}
		rb.SetAttributeValue("address", cty.StringVal(r.Address))
		rb.SetAttributeValue("port", cty.NumberIntVal(int64(r.Port)))
		if r.Protocol != "" {
			rb.SetAttributeValue("proto", cty.StringVal(r.Protocol))
		}
		if r.Client != "" {
			rb.SetAttributeValue("client", cty.StringVal(r.Client))
		}
		if r.Classification != "" {
			rb.SetAttributeValue("classification", cty.StringVal(r.Classification))
		}
		if r.Description != "" {
			rb.SetAttributeValue("description", cty.StringVal(r.Description))
		}
	}

	return f.Bytes()
}
