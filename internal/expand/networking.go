package expand

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/sourceplane/litetopo/internal/azure"
	"github.com/sourceplane/litetopo/internal/model"
)

// Subnets of the deployment's virtual network
const (
	SubnetBackend = "backend"
	SubnetWeb     = "web"
	SubnetPeps    = "peps"
)

var subnetPrefixes = []struct {
	name, prefix, delegation string
}{
	{SubnetBackend, "10.0.0.0/23", "Microsoft.ContainerInstance/containerGroups"},
	{SubnetWeb, "10.0.2.0/23", "Microsoft.Web/serverFarms"},
	{SubnetPeps, "10.0.4.0/23", ""},
}

const vnetAddressSpace = "10.0.0.0/20"

// privateLink describes how one data-plane kind is exposed in the vnet
type privateLink struct {
	group string
	// zones are keyed by short label; the value picks the suffix from the cloud table
	zones []zoneSuffix
}

type zoneSuffix struct {
	label  string
	suffix func(azure.Cloud) string
}

var privateLinks = map[model.ResourceKind]privateLink{
	model.KindStorageAccount: {group: "blob", zones: []zoneSuffix{
		{"blob", func(c azure.Cloud) string { return "blob." + c.Storage }},
	}},
	model.KindSearchService: {group: "searchService", zones: []zoneSuffix{
		{"search", func(c azure.Cloud) string { return c.Search }},
	}},
	model.KindCosmosAccount: {group: "Sql", zones: []zoneSuffix{
		{"cosmos", func(c azure.Cloud) string { return c.Cosmos }},
	}},
	model.KindKeyVault: {group: "vault", zones: []zoneSuffix{
		{"vault", func(c azure.Cloud) string { return c.KeyVaultDNS }},
	}},
	model.KindAIServices: {group: "account", zones: []zoneSuffix{
		{"cognitive", func(c azure.Cloud) string { return c.Cognitive }},
		{"openai", func(c azure.Cloud) string { return c.OpenAI }},
		{"aifoundry", func(c azure.Cloud) string { return c.AIFoundry }},
	}},
}

func contributePrivateNetworking(ctx *Context, b *Builder) error {
	vnet := ctx.spec(IDVirtualNetwork, model.KindVirtualNetwork, virtualNetwork(ctx))
	if _, err := b.AddResource(vnet); err != nil {
		return err
	}

	zonesAdded := make(map[string]bool)
	for _, id := range b.ResourceIDs() {
		target, _ := b.Resource(id)
		if !target.Kind.Info().DataPlane {
			continue
		}
		link, ok := privateLinks[target.Kind]
		if !ok {
			continue
		}

		zoneIDs := make([]string, 0, len(link.zones))
		zoneRIDs := make([]string, 0, len(link.zones))
		for _, z := range link.zones {
			suffix := z.suffix(ctx.Cloud)
			if suffix == "" {
				continue
			}
			zoneID := "dns-" + z.label
			zoneName := azure.PrivateLinkZone(suffix)
			zoneRIDs = append(zoneRIDs, ctx.ResourceID(model.KindPrivateDNSZone, zoneName))
			zoneIDs = append(zoneIDs, zoneID)
			if zonesAdded[zoneID] {
				continue
			}
			zonesAdded[zoneID] = true
			if err := addZone(ctx, b, zoneID, z.label, zoneName); err != nil {
				return err
			}
		}

		if err := addPrivateEndpoint(ctx, b, target, link.group, zoneIDs, zoneRIDs); err != nil {
			return err
		}
	}
	return nil
}

func virtualNetwork(ctx *Context) *armnetwork.VirtualNetwork {
	subnets := make([]*armnetwork.Subnet, 0, len(subnetPrefixes))
	for _, s := range subnetPrefixes {
		props := &armnetwork.SubnetPropertiesFormat{AddressPrefix: to.Ptr(s.prefix)}
		if s.delegation != "" {
			props.Delegations = []*armnetwork.Delegation{{
				Name: to.Ptr(s.name + "-delegation"),
				Properties: &armnetwork.ServiceDelegationPropertiesFormat{
					ServiceName: to.Ptr(s.delegation),
				},
			}}
		} else {
			props.PrivateEndpointNetworkPolicies = to.Ptr(armnetwork.VirtualNetworkPrivateEndpointNetworkPoliciesDisabled)
		}
		subnets = append(subnets, &armnetwork.Subnet{Name: to.Ptr(s.name), Properties: props})
	}
	return &armnetwork.VirtualNetwork{
		Location: to.Ptr(ctx.Config.Location),
		Tags:     ctx.tagPtrs(),
		Properties: &armnetwork.VirtualNetworkPropertiesFormat{
			AddressSpace: &armnetwork.AddressSpace{AddressPrefixes: []*string{to.Ptr(vnetAddressSpace)}},
			Subnets:      subnets,
		},
	}
}

func addZone(ctx *Context, b *Builder, zoneID, label, zoneName string) error {
	zone, err := ctx.child(zoneID, model.KindPrivateDNSZone, zoneName, nil, map[string]any{
		"location": "global",
		"tags":     ctx.Config.Tags,
	})
	if err != nil {
		return err
	}
	zone.Location = "global"
	if _, err := b.AddResource(zone); err != nil {
		return err
	}

	linkName := ctx.Names[model.KindPrivateDNSZoneLink]
	link, err := ctx.child("link-"+label, model.KindPrivateDNSZoneLink, linkName, []string{zoneName}, map[string]any{
		"location": "global",
		"properties": map[string]any{
			"registrationEnabled": false,
			"virtualNetwork":      map[string]any{"id": ctx.ResourceID(model.KindVirtualNetwork, ctx.Names[model.KindVirtualNetwork])},
		},
	}, zoneID, IDVirtualNetwork)
	if err != nil {
		return err
	}
	link.Location = "global"
	_, err = b.AddResource(link)
	return err
}

func addPrivateEndpoint(ctx *Context, b *Builder, target *model.ResourceSpec, group string, zoneIDs, zoneRIDs []string) error {
	pepID := "pep-" + target.ID
	name := "pep-" + target.Name
	props := &armnetwork.PrivateEndpoint{
		Location: to.Ptr(ctx.Config.Location),
		Tags:     ctx.tagPtrs(),
		Properties: &armnetwork.PrivateEndpointProperties{
			Subnet: &armnetwork.Subnet{ID: to.Ptr(ctx.subnetID(SubnetPeps))},
			PrivateLinkServiceConnections: []*armnetwork.PrivateLinkServiceConnection{{
				Name: to.Ptr(name),
				Properties: &armnetwork.PrivateLinkServiceConnectionProperties{
					PrivateLinkServiceID: to.Ptr(target.ResourceID),
					GroupIDs:             []*string{to.Ptr(group)},
				},
			}},
		},
	}
	pep, err := ctx.child(pepID, model.KindPrivateEndpoint, name, nil, props, target.ID, IDVirtualNetwork)
	if err != nil {
		return err
	}
	pep.Location = ctx.Config.Location
	if _, err := b.AddResource(pep); err != nil {
		return err
	}
	b.AddEdge(model.Edge{From: target.ID, To: pepID, Kind: model.EdgePrivateEndpoint})

	if len(zoneIDs) == 0 {
		return nil
	}
	configs := make([]*armnetwork.PrivateDNSZoneConfig, 0, len(zoneRIDs))
	for i, rid := range zoneRIDs {
		configs = append(configs, &armnetwork.PrivateDNSZoneConfig{
			Name:       to.Ptr(zoneIDs[i]),
			Properties: &armnetwork.PrivateDNSZonePropertiesFormat{PrivateDNSZoneID: to.Ptr(rid)},
		})
	}
	zoneGroup := &armnetwork.PrivateDNSZoneGroup{
		Properties: &armnetwork.PrivateDNSZoneGroupPropertiesFormat{PrivateDNSZoneConfigs: configs},
	}
	deps := append([]string{pepID}, zoneIDs...)
	zg, err := ctx.child(fmt.Sprintf("%s-dns", pepID), model.KindDNSZoneGroup, "default", []string{name}, zoneGroup, deps...)
	if err != nil {
		return err
	}
	_, err = b.AddResource(zg)
	return err
}
