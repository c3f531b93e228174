//go:generate mockgen -source=../order_gateway.go           -destination=./mock_order_gateway.go           -package=mocks
//go:generate mockgen -source=../token_source.go            -destination=./mock_token_source.go            -package=mocks
//go:generate mockgen -source=../change_notifier.go         -destination=./mock_change_notifier.go         -package=mocks
//go:generate mockgen -source=../order_input_validator.go   -destination=./mock_order_input_validator.go   -package=mocks
//go:generate mockgen -source=../order_sync_service.go      -destination=./mock_order_sync_service.go      -package=mocks
//go:generate mockgen -source=../message_consumer.go        -destination=./mock_message_consumer.go        -package=mocks
//go:generate mockgen -source=../change_handler.go          -destination=./mock_change_handler.go          -package=mocks

package mocks
