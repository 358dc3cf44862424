package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/drivehub/app/models"
	"github.com/shashiranjanraj/drivehub/app/services"
)

func newTemplate(t *testing.T, svc *services.ContractService, admin models.User) models.ContractTemplate {
	t.Helper()
	template, err := svc.CreateTemplate(services.ContractTemplateInput{
		Name:    "Rental Agreement",
		Type:    models.ContractRent,
		Content: "This contract between {{company}} and {{customerName}} covers {{carName}}.",
		Variables: models.ContractVariables{
			{Name: "company", DefaultValue: "DriveHub Ltd"},
			{Name: "customerName"},
			{Name: "carName"},
		},
	}, admin.ID)
	require.NoError(t, err)
	return template
}

func TestGenerateOrderContractCarGone(t *testing.T) {
	db := setupDB(t)
	useFakeMail(t)
	user := seedUser(t, db, "buyer@example.com", false)
	car := seedCar(t, db, models.CarAvailable)

	orders := services.NewOrderService()
	order, err := orders.Place(user.ID, services.OrderInput{CarID: car.ID, Type: models.OrderBuy})
	require.NoError(t, err)

	require.NoError(t, services.NewCarService().Delete(car.ID))

	_, err = services.NewContractService().GenerateOrderContract(order.ID, "")
	assert.ErrorIs(t, err, services.ErrOrderDataMissing)
}

func TestGenerateFromTemplate(t *testing.T) {
	db := setupDB(t)
	admin := seedUser(t, db, "admin@example.com", true)
	svc := services.NewContractService()
	template := newTemplate(t, svc, admin)

	result, err := svc.GenerateFromTemplate(template.ID, map[string]string{
		"customerName": "Jamie",
		"carName":      "Toyota Corolla",
	})
	require.NoError(t, err)
	assert.Equal(t,
		"This contract between DriveHub Ltd and Jamie covers Toyota Corolla.",
		result.GeneratedContent)
}

func TestGenerateFromTemplateLeavesUnknownPlaceholders(t *testing.T) {
	db := setupDB(t)
	admin := seedUser(t, db, "admin@example.com", true)
	svc := services.NewContractService()
	template := newTemplate(t, svc, admin)

	result, err := svc.GenerateFromTemplate(template.ID, nil)
	require.NoError(t, err)
	// company falls back to its default; the others stay visible.
	assert.Equal(t,
		"This contract between DriveHub Ltd and {{customerName}} covers {{carName}}.",
		result.GeneratedContent)
}

func TestCreateTemplateRejectsUnknownType(t *testing.T) {
	db := setupDB(t)
	admin := seedUser(t, db, "admin@example.com", true)
	svc := services.NewContractService()

	_, err := svc.CreateTemplate(services.ContractTemplateInput{
		Name:    "Bad",
		Type:    "lease",
		Content: "x",
	}, admin.ID)
	assert.ErrorIs(t, err, services.ErrInvalidContractType)
}

func TestTemplatesByType(t *testing.T) {
	db := setupDB(t)
	admin := seedUser(t, db, "admin@example.com", true)
	svc := services.NewContractService()

	_, err := svc.CreateTemplate(services.ContractTemplateInput{
		Name: "Rent only", Type: models.ContractRent, Content: "r",
	}, admin.ID)
	require.NoError(t, err)
	_, err = svc.CreateTemplate(services.ContractTemplateInput{
		Name: "Buy only", Type: models.ContractBuy, Content: "b",
	}, admin.ID)
	require.NoError(t, err)
	_, err = svc.CreateTemplate(services.ContractTemplateInput{
		Name: "Either", Type: models.ContractBoth, Content: "e",
	}, admin.ID)
	require.NoError(t, err)

	inactive := false
	_, err = svc.CreateTemplate(services.ContractTemplateInput{
		Name: "Disabled", Type: models.ContractRent, Content: "d", IsActive: &inactive,
	}, admin.ID)
	require.NoError(t, err)

	rent, err := svc.TemplatesByType(models.ContractRent)
	require.NoError(t, err)
	names := make([]string, 0, len(rent))
	for _, tpl := range rent {
		names = append(names, tpl.Name)
	}
	assert.ElementsMatch(t, []string{"Rent only", "Either"}, names)

	_, err = svc.TemplatesByType("both")
	assert.ErrorIs(t, err, services.ErrInvalidContractType)
}
