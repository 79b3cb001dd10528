package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/cespare/xxhash/v2"
	"github.com/sourceplane/litetopo/internal/render"
)

// ARMProvisioner applies each node as an incremental ARM deployment in
// the resource group its resource id (or role scope) names. Template
// expressions in the request body are evaluated by ARM.
type ARMProvisioner struct {
	credential azcore.TokenCredential
	options    *arm.ClientOptions

	mu      sync.Mutex
	clients map[string]*armresources.DeploymentsClient
}

// NewARMProvisioner creates a provisioner. options selects the cloud.
func NewARMProvisioner(credential azcore.TokenCredential, options *arm.ClientOptions) *ARMProvisioner {
	return &ARMProvisioner{
		credential: credential,
		options:    options,
		clients:    map[string]*armresources.DeploymentsClient{},
	}
}

func (p *ARMProvisioner) Apply(ctx context.Context, node Node) error {
	var (
		tmpl   *render.Template
		target string
		err    error
	)
	switch {
	case node.Resource != nil:
		target = node.Resource.ResourceID
		tmpl, err = render.ResourceTemplate(*node.Resource)
	case node.RoleAssignment != nil:
		target = node.RoleAssignment.Scope
		tmpl, err = render.RoleAssignmentTemplate(*node.RoleAssignment)
	default:
		return fmt.Errorf("node %s is empty", node.ID)
	}
	if err != nil {
		return err
	}

	subscriptionID, resourceGroup, err := render.Scope(target)
	if err != nil {
		return err
	}
	client, err := p.client(subscriptionID)
	if err != nil {
		return err
	}

	deployment := armresources.Deployment{
		Properties: &armresources.DeploymentProperties{
			Mode:     to.Ptr(armresources.DeploymentModeIncremental),
			Template: tmpl,
		},
	}
	poller, err := client.BeginCreateOrUpdate(ctx, resourceGroup, DeploymentName(node.ID, target), deployment, nil)
	if err != nil {
		return fmt.Errorf("failed to start deployment: %w", err)
	}
	if _, err := poller.PollUntilDone(ctx, nil); err != nil {
		return fmt.Errorf("deployment failed: %w", err)
	}
	return nil
}

func (p *ARMProvisioner) client(subscriptionID string) (*armresources.DeploymentsClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.clients[subscriptionID]; ok {
		return c, nil
	}
	c, err := armresources.NewDeploymentsClient(subscriptionID, p.credential, p.options)
	if err != nil {
		return nil, fmt.Errorf("failed to create deployments client: %w", err)
	}
	p.clients[subscriptionID] = c
	return c, nil
}

// DeploymentName is stable per node and target so re-runs update the
// same deployment record. ARM caps deployment names at 64 characters.
func DeploymentName(nodeID, target string) string {
	return fmt.Sprintf("litetopo-%016x", xxhash.Sum64String(nodeID+"|"+target))
}
