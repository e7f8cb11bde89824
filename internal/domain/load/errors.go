package load

import "errors"

var (
	ErrLoadNotFound         = errors.New("load not found")
	ErrLoadIDExists         = errors.New("load id already exists")
	ErrParentRequired       = errors.New("partial load must reference a parent load")
	ErrParentNotAllowed     = errors.New("full load cannot reference a parent load")
	ErrParentNotFound       = errors.New("parent load not found")
	ErrParentNotFull        = errors.New("parent load must be a FULL load")
	ErrLoadHasPartials      = errors.New("load still has partial loads attached")
	ErrDeliveryBeforePickup = errors.New("delivery date cannot be before pickup date")
)
